package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/nblint/internal/cli"
	"github.com/leapstack-labs/nblint/internal/cli/config"
	"github.com/leapstack-labs/nblint/pkg/lint/rules"
)

// commandDoc is the documented view of one nblint subcommand.
type commandDoc struct {
	Name     string
	Summary  string
	Body     string
	Usage    string
	Flags    []flagDoc
	Global   []flagDoc
	Examples string
}

// flagDoc is one row of a flag table.
type flagDoc struct {
	Name      string
	Shorthand string
	Default   string
	Usage     string
}

// envDoc maps an environment variable to the config key it sets.
type envDoc struct {
	Var string
	Key string
}

// generateCLIDocs writes an index page plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	docs := collectCommands(root)

	index := renderCLIIndex(docs, collectFlags(root.PersistentFlags()), envVars(root))
	if err := os.WriteFile(filepath.Join(outDir, "index.md"), index, 0600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, d := range docs {
		if err := os.WriteFile(filepath.Join(outDir, d.Name+".md"), renderCommandPage(d), 0600); err != nil {
			return fmt.Errorf("failed to write page for %s: %w", d.Name, err)
		}
		log.Printf("  Generated %s.md", d.Name)
	}
	return nil
}

// collectCommands reads the documented subcommands of root.
func collectCommands(root *cobra.Command) []commandDoc {
	var docs []commandDoc
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		d := commandDoc{
			Name:     cmd.Name(),
			Summary:  cmd.Short,
			Body:     cmd.Long,
			Usage:    "nblint " + cmd.Use,
			Examples: cleanExample(cmd.Example),
		}
		if d.Body == "" {
			d.Body = cmd.Short
		}
		if cmd.HasLocalFlags() {
			d.Flags = collectFlags(cmd.LocalFlags())
		}
		if cmd.HasInheritedFlags() {
			d.Global = collectFlags(cmd.InheritedFlags())
		}
		docs = append(docs, d)
	}
	return docs
}

// collectFlags lists the visible flags of a set in definition order.
func collectFlags(flags *pflag.FlagSet) []flagDoc {
	var out []flagDoc
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		fd := flagDoc{Name: f.Name, Usage: cleanDescription(f.Usage)}
		if f.Shorthand != "" {
			fd.Shorthand = "-" + f.Shorthand
		}
		if f.DefValue != "" && f.DefValue != "[]" {
			fd.Default = f.DefValue
		}
		out = append(out, fd)
	})
	return out
}

// envVars derives the NBLINT_* variables from the global flags and the
// options of every registered checker.
func envVars(root *cobra.Command) []envDoc {
	var out []envDoc
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		out = append(out, envDoc{Var: config.EnvPrefix + strings.ToUpper(key), Key: key})
	})

	out = append(out, envDoc{Var: config.EnvPrefix + "LINT__MIN_SEVERITY", Key: "lint.min_severity"})
	for _, c := range rules.NewDefaultRegistry().All() {
		for _, o := range c.Options() {
			out = append(out, envDoc{
				Var: config.EnvPrefix + "LINT__RULES__" + envSegment(c.Name()) + "__" + envSegment(o.Name),
				Key: "lint.rules." + c.Name() + "." + o.Name,
			})
		}
	}
	return out
}

// envSegment turns a kebab-case name into an environment variable segment.
func envSegment(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func renderCLIIndex(docs []commandDoc, global []flagDoc, env []envDoc) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for nblint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("nblint lints Databricks notebook sources from the command line, in CI or while you edit.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/nblint/cmd/nblint@latest\nnblint <command> [options]")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(d.Name), d.Name),
			cleanDescription(d.Summary),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, global)

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf("Settings are read from %s, searched upward from the working directory, "+
		"then from the environment, then from flags. Later sources win.",
		InlineCode(config.ConfigFileNames[0])))
	envRows := make([][]string, 0, len(env))
	for _, e := range env {
		envRows = append(envRows, []string{InlineCode(e.Var), InlineCode(e.Key)})
	}
	w.Table([]string{"Variable", "Config key"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table(
		[]string{"Code", "Meaning"},
		[][]string{
			{InlineCode(fmt.Sprint(cli.ExitOK)), "No issues at or above the severity threshold"},
			{InlineCode(fmt.Sprint(cli.ExitIssues)), "Lint issues found"},
			{InlineCode(fmt.Sprint(cli.ExitError)), "Usage, config or read error (details on stderr)"},
		},
	)
	return w.Bytes()
}

func renderCommandPage(d commandDoc) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(d.Name, d.Summary)
	w.GeneratedMarker()

	w.Header(1, d.Name)
	w.Paragraph(d.Body)

	w.Header(2, "Usage")
	w.CodeBlock("bash", d.Usage)

	if len(d.Flags) > 0 {
		w.Header(2, "Options")
		writeFlagsTable(w, d.Flags)
	}
	if len(d.Global) > 0 {
		w.Header(2, "Global Options")
		writeFlagsTable(w, d.Global)
	}
	if d.Examples != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", d.Examples)
	}
	return w.Bytes()
}

func writeFlagsTable(w *MarkdownWriter, flags []flagDoc) {
	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		def := f.Default
		if def != "" && def != "false" && def != "true" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), f.Shorthand, def, f.Usage})
	}
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
