// Package rules composes the built-in nblint checkers.
//
// Checkers are organized by the kind of file they understand:
//   - notebook: Databricks notebook source files (E9994, E9996)
//
// Hosts call NewDefaultRegistry at startup and may register additional
// checkers on the returned registry:
//
//	reg := rules.NewDefaultRegistry()
//	reg.MustRegister(myChecker)
package rules
