package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/nblint/internal/cli/config"
	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: auto, text, markdown, json, sarif
	Disable  []string // Message IDs or symbols to disable
	Severity string   // Minimum severity: error, warning, info, hint
	MaxCells int      // Cell limit for Databricks notebooks

	// MaxCellsSet is true when --max-cells was given, so an explicit 0 is
	// validated instead of being read as unset.
	MaxCellsSet bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Databricks notebook sources",
		Long: `Scan Python files for Databricks notebook problems.

A file is treated as a notebook when its first line is exactly
"# Databricks notebook source". Notebooks are checked for too many
cells and for "# MAGIC %run" directives. Other files are skipped.

Directories are walked recursively; explicitly named files are always
scanned. The command exits non-zero when issues at or above the severity
threshold are found.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON / SARIF: Machine-readable format`,
		Example: `  # Lint the current directory
  nblint lint

  # Lint specific paths
  nblint lint jobs/ shared/etl.py

  # Allow longer notebooks
  nblint lint --max-cells 120

  # Ignore %run usage
  nblint lint --disable notebooks-percent-run

  # Upload to code scanning
  nblint lint --format sarif > nblint.sarif`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: "+strings.Join(output.ModeNames(), ", "))
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Message IDs or symbols to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity: error, warning, info, hint (default from config)")
	cmd.Flags().IntVar(&opts.MaxCells, "max-cells", 0, fmt.Sprintf("Maximum cells per notebook (default %d)", notebook.DefaultMaxCells))

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ModeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	opts.MaxCellsSet = cmd.Flags().Changed("max-cells")
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	lintCfg, threshold, err := buildLintConfig(cmdCtx, opts)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	res, err := cmdCtx.NewEngine(lintCfg).Run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	return reportLint(cmdCtx, res, threshold)
}

// reportLint renders the issues at or above threshold and returns
// ErrLintIssues when any remain.
func reportLint(cmdCtx *CommandContext, res *engine.Result, threshold lint.Severity) error {
	filtered := res.FilterSeverity(threshold)
	if err := cmdCtx.Renderer.LintReport(filtered, cmdCtx.Registry.Rules()); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	if filtered.Summary.TotalIssues > 0 {
		return ErrLintIssues
	}
	return nil
}

// buildLintConfig merges the loaded config with CLI overrides and returns the
// lint configuration plus the reporting threshold.
func buildLintConfig(cmdCtx *CommandContext, opts *LintOptions) (*lint.Config, lint.Severity, error) {
	cfg := cmdCtx.Cfg
	if cfg == nil {
		cfg = config.Default()
	}

	// Project config first (lower precedence)
	lintCfg, err := cfg.BuildLintConfig(cmdCtx.Registry)
	if err != nil {
		return nil, 0, err
	}

	// CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(id)
		}
	}

	if opts.MaxCellsSet {
		cellOpts := map[string]any{notebook.OptionMaxCells: opts.MaxCells}
		if _, err := notebook.ConfigFromOptions(cellOpts); err != nil {
			return nil, 0, fmt.Errorf("--max-cells: %w", err)
		}
		lintCfg.SetCheckerOptions(notebook.CheckerName, cellOpts)
	}

	threshold := cfg.MinSeverity()
	if opts.Severity != "" {
		sev, ok := lint.ParseSeverity(opts.Severity)
		if !ok {
			return nil, 0, fmt.Errorf("invalid severity %q: must be one of error, warning, info, hint", opts.Severity)
		}
		threshold = sev
	}

	return lintCfg, threshold, nil
}
