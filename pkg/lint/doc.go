// Package lint provides the shared contracts for nblint checkers.
//
// # Architecture
//
// The lint package is the layer every checker and host builds on:
//
//  1. Line streams (SourceLine, ReadLines, FileLines): files are treated as
//     opaque, forward-only sequences of raw lines. No language parse tree is
//     involved, so checkers can see comment-encoded markers directly.
//  2. Checkers (Checker, MessageDef, OptionDef): a named rule unit that
//     consumes one line stream and reports diagnostics.
//  3. Registry: a host-owned collection of checkers, composed at startup.
//  4. Analyzer: runs the enabled checkers of a registry against one file and
//     applies Config (disabled messages, severity overrides, options).
//
// # Using the Registry
//
// Hosts build their own registry rather than relying on process-wide state:
//
//	reg := lint.NewRegistry()
//	if err := reg.Register(notebook.NewChecker()); err != nil {
//		return err
//	}
//
// The rules package provides the default composition:
//
//	reg := rules.NewDefaultRegistry()
//
// # Configuration
//
// Use Config to control which messages are reported and how:
//
//	cfg := lint.NewConfig()
//	cfg.Disable("notebooks-percent-run")
//	cfg.SetSeverity("E9996", lint.SeverityWarning)
//	cfg.SetCheckerOptions("databricks-notebooks", map[string]any{"max-cells": 50})
//
//	analyzer := lint.NewAnalyzer(reg, cfg)
//	diags, err := analyzer.AnalyzeFile("etl/ingest.py")
package lint
