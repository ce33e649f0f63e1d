package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/rules"
)

// generateLintDocs writes an index page plus one page per checker.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	registry := rules.NewDefaultRegistry()
	all := registry.Rules()

	if err := generateLintIndex(outDir, registry, all); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, c := range registry.All() {
		if err := generateCheckerPage(outDir, c, all); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", c.Name())
	}
	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string, registry *lint.Registry, all []lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rules for Databricks notebook sources")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("nblint ships %d checkers with %d messages.", registry.Len(), len(all)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Messages and checkers are configured in `.nblint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [notebooks-percent-run]   # by ID or symbol
  severity:
    E9996: warning                    # override severity
  rules:
    databricks-notebooks:
      max-cells: 100                  # checker option`)

	w.Header(2, "Messages")
	var rows [][]string
	for _, ri := range all {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s#%s)", ri.ID, ri.Checker, ri.Symbol),
			InlineCode(ri.Symbol),
			InlineCode(ri.Severity.String()),
			cleanDescription(ri.Description),
		})
	}
	w.Table([]string{"ID", "Symbol", "Severity", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCheckerPage documents one checker and its messages.
func generateCheckerPage(outDir string, c lint.Checker, all []lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter(c.Name(), c.Description())
	w.GeneratedMarker()

	w.Header(1, c.Name())
	w.Paragraph(c.Description())

	if opts := c.Options(); len(opts) > 0 {
		w.Header(2, "Options")
		var rows [][]string
		for _, o := range opts {
			rows = append(rows, []string{InlineCode(o.Name), o.Type, InlineCode(fmt.Sprint(o.Default)), cleanDescription(o.Help)})
		}
		w.Table([]string{"Option", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Messages")
	for _, ri := range all {
		if ri.Checker == c.Name() {
			writeRuleDoc(w, ri)
		}
	}

	return os.WriteFile(filepath.Join(outDir, c.Name()+".md"), w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single message.
func writeRuleDoc(w *MarkdownWriter, ri lint.RuleInfo) {
	// ### E9994 - notebooks-percent-run {#notebooks-percent-run}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", ri.ID, ri.Symbol, ri.Symbol))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(ri.Severity.String())))
	w.Newline()
	w.Line(fmt.Sprintf("**Message:** %s", InlineCode(ri.Template)))
	w.Newline()

	w.Paragraph(cleanDescription(ri.Description))

	if ri.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(ri.Rationale)
	}

	if ri.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("python", ri.BadExample)
	}

	if ri.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("python", ri.GoodExample)
	}

	w.Line("---")
	w.Newline()
}
