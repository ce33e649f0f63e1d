// Package notebook detects structural problems in Databricks notebook
// source files.
//
// A notebook source file is an ordinary Python file whose first line is
// exactly "# Databricks notebook source". Cells are separated by
// "# COMMAND ----------" lines and notebook magics are written as
// "# MAGIC ..." comments. These markers are comments, so they are found by
// scanning raw lines rather than a parse tree.
//
// Scan makes a single forward pass. Files whose first line is not the
// notebook header are rejected immediately and produce no findings.
package notebook
