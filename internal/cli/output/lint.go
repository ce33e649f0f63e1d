package output

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/pkg/lint"
)

// LintOutput is the JSON document for a lint run.
type LintOutput struct {
	Summary engine.Summary   `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is a single diagnostic in JSON output.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	Symbol           string `json:"symbol"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Line             int    `json:"line"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// NewLintOutput converts an engine result into its JSON form.
// Files without diagnostics are omitted; the summary still counts them.
func NewLintOutput(res *engine.Result) LintOutput {
	out := LintOutput{Summary: res.Summary, Files: []LintFileResult{}}
	for _, fr := range res.Files {
		if len(fr.Diagnostics) == 0 {
			continue
		}
		file := LintFileResult{Path: fr.Path}
		for _, d := range fr.Diagnostics {
			file.Diagnostics = append(file.Diagnostics, LintDiagnostic{
				RuleID:           d.RuleID,
				Symbol:           d.Symbol,
				Severity:         d.Severity.String(),
				Message:          d.Message,
				Line:             d.Line,
				DocumentationURL: d.DocumentationURL,
			})
		}
		out.Files = append(out.Files, file)
	}
	return out
}

// LintReport renders a lint result in the renderer's effective mode.
// rules feeds the SARIF rule table and may be nil for other modes.
func (r *Renderer) LintReport(res *engine.Result, rules []lint.RuleInfo) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(NewLintOutput(res))
	case ModeSARIF:
		return r.JSON(NewSARIFLog(res, rules))
	case ModeMarkdown:
		r.lintMarkdown(res)
	default:
		r.lintText(res)
	}
	return nil
}

func (r *Renderer) lintText(res *engine.Result) {
	if res.Summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found (%s)", scannedPhrase(res.Summary)))
		return
	}

	for _, fr := range res.Files {
		if len(fr.Diagnostics) == 0 {
			continue
		}
		r.Println(r.styles.FilePath.Render(fr.Path))
		for _, d := range fr.Diagnostics {
			r.Printf("  %s  %s  %s  %s\n",
				r.styles.Muted.Render(fmt.Sprintf("%-5d", d.Line)),
				r.severityLabel(d.Severity),
				r.styles.Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println()
	}
	r.Printf("Summary: %s in %s\n", issuesPhrase(res.Summary), scannedPhrase(res.Summary))
}

func (r *Renderer) lintMarkdown(res *engine.Result) {
	r.Println(FormatHeader(1, "Lint Results"))
	r.Println()

	if res.Summary.TotalIssues == 0 {
		r.Printf("No lint issues found (%s).\n", scannedPhrase(res.Summary))
		return
	}

	for _, fr := range res.Files {
		if len(fr.Diagnostics) == 0 {
			continue
		}
		r.Println(FormatHeader(2, "`"+fr.Path+"`"))
		r.Println()
		r.Println("| Line | Severity | Rule | Message |")
		r.Println("|------|----------|------|---------|")
		for _, d := range fr.Diagnostics {
			r.Printf("| %d | %s | %s (%s) | %s |\n",
				d.Line, d.Severity, d.RuleID, d.Symbol, escapeCell(d.Message))
		}
		r.Println()
	}

	r.Println(FormatHeader(2, "Summary"))
	r.Println()
	r.Println(FormatKeyValue("Issues", issuesPhrase(res.Summary)))
	r.Println(FormatKeyValue("Files scanned", fmt.Sprintf("%d", res.Summary.FilesScanned)))
	r.Println(FormatKeyValue("Notebooks", fmt.Sprintf("%d", res.Summary.Notebooks)))
}

func (r *Renderer) severityLabel(sev lint.Severity) string {
	label := fmt.Sprintf("%-7s", sev.String())
	switch sev {
	case lint.SeverityError:
		return r.styles.Error.Render(label)
	case lint.SeverityWarning:
		return r.styles.Warning.Render(label)
	case lint.SeverityInfo:
		return r.styles.Info.Render(label)
	default:
		return r.styles.Muted.Render(label)
	}
}

func issuesPhrase(s engine.Summary) string {
	parts := []string{fmt.Sprintf("%d issues", s.TotalIssues)}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.Warnings))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", s.Hints))
	}
	return strings.Join(parts, ", ")
}

func scannedPhrase(s engine.Summary) string {
	return fmt.Sprintf("%d files, %d notebooks", s.FilesScanned, s.Notebooks)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
