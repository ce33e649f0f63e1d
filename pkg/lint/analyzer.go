package lint

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// LineSource opens a fresh line stream for one checker pass.
type LineSource func() iter.Seq2[SourceLine, error]

// Analyzer runs the checkers of a registry against files.
type Analyzer struct {
	registry *Registry
	config   *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(registry *Registry, config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Analyzer{registry: registry, config: config}
}

// Report is the outcome of analyzing one source.
type Report struct {
	Diagnostics []Diagnostic
	// Matched names the Classifier checkers that apply to the source.
	Matched []string
}

// MatchedBy reports whether the named checker classified the source as its own.
func (r *Report) MatchedBy(checker string) bool {
	return slices.Contains(r.Matched, checker)
}

// AnalyzeFile runs every enabled checker against the file at path.
// Each checker reads the file in its own single forward pass.
func (a *Analyzer) AnalyzeFile(path string) ([]Diagnostic, error) {
	report, err := a.ReportFile(path)
	if err != nil {
		return nil, err
	}
	return report.Diagnostics, nil
}

// ReportFile is AnalyzeFile that also returns the file's classification.
func (a *Analyzer) ReportFile(path string) (*Report, error) {
	report, err := a.Report(func() iter.Seq2[SourceLine, error] {
		return FileLines(path)
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	for i := range report.Diagnostics {
		report.Diagnostics[i].FilePath = path
	}
	return report, nil
}

// Analyze runs every enabled checker against streams produced by src.
// Diagnostics are ordered by line; ties keep checker order.
func (a *Analyzer) Analyze(src LineSource) ([]Diagnostic, error) {
	report, err := a.Report(src)
	if err != nil {
		return nil, err
	}
	return report.Diagnostics, nil
}

// Report is Analyze that also records which classifying checkers matched.
// A fully disabled Classifier still classifies, which reads only as much of
// the source as Classify needs.
func (a *Analyzer) Report(src LineSource) (*Report, error) {
	report := &Report{}
	var diagnostics []Diagnostic

	for _, checker := range a.registry.All() {
		classifier, classifies := checker.(Classifier)

		if a.checkerDisabled(checker) {
			if !classifies {
				continue
			}
			matched, err := classifier.Classify(src())
			if err != nil {
				return nil, fmt.Errorf("checker %s: %w", checker.Name(), err)
			}
			if matched {
				report.Matched = append(report.Matched, checker.Name())
			}
			continue
		}

		opts := a.config.GetCheckerOptions(checker.Name())
		var (
			diags   []Diagnostic
			matched bool
			err     error
		)
		if classifies {
			matched, diags, err = classifier.CheckClassified(src(), opts)
		} else {
			diags, err = checker.Check(src(), opts)
		}
		if err != nil {
			return nil, fmt.Errorf("checker %s: %w", checker.Name(), err)
		}
		if matched {
			report.Matched = append(report.Matched, checker.Name())
		}

		for _, d := range diags {
			if a.config.IsDisabled(d.RuleID, d.Symbol) {
				continue
			}
			d.Checker = checker.Name()
			d.Severity = a.config.GetSeverity(d.RuleID, d.Symbol, d.Severity)
			if d.DocumentationURL == "" && d.Symbol != "" {
				d.DocumentationURL = BuildDocURL(d.Symbol)
			}
			diagnostics = append(diagnostics, d)
		}
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Line < diagnostics[j].Line
	})
	report.Diagnostics = diagnostics
	return report, nil
}

// checkerDisabled reports whether every message of the checker is disabled,
// in which case the file need not be read at all.
func (a *Analyzer) checkerDisabled(c Checker) bool {
	msgs := c.Messages()
	if len(msgs) == 0 {
		return false
	}
	for _, m := range msgs {
		if !a.config.IsDisabled(m.ID, m.Symbol) {
			return false
		}
	}
	return true
}
