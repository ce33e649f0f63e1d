package notebook

import (
	"fmt"
	"iter"

	"github.com/leapstack-labs/nblint/pkg/lint"
)

// CheckerName is the registered name of the notebook checker.
const CheckerName = "databricks-notebooks"

// OptionMaxCells is the option key for the cell limit.
const OptionMaxCells = "max-cells"

// Message definitions.
var (
	TooManyCellsMessage = lint.MessageDef{
		ID:          "E9996",
		Symbol:      "notebooks-too-many-cells",
		Template:    "Notebooks should not have more than {max-cells} cells",
		Description: "Used when the number of cells in a notebook is greater than max-cells",
		Severity:    lint.SeverityError,
		Rationale: "Very long notebooks are hard to review and usually mix several jobs. " +
			"Split them into smaller notebooks or move shared code into modules.",
	}

	PercentRunMessage = lint.MessageDef{
		ID:          "E9994",
		Symbol:      "notebooks-percent-run",
		Template:    "Using %run is not allowed",
		Description: "Used when `# MAGIC %run` comment is used",
		Severity:    lint.SeverityError,
		Rationale: "%run executes another notebook inline, hiding its names from static analysis. " +
			"Import the code as a module instead.",
		BadExample:  "# MAGIC %run ./utils",
		GoodExample: "from utils import helpers",
	}
)

var messagesByKind = map[Kind]lint.MessageDef{
	TooManyCells:   TooManyCellsMessage,
	PercentRunUsed: PercentRunMessage,
}

// Checker adapts Scan to the lint.Checker contract.
type Checker struct{}

// NewChecker creates the notebook checker.
func NewChecker() *Checker { return &Checker{} }

// Name implements lint.Checker.
func (*Checker) Name() string { return CheckerName }

// Description implements lint.Checker.
func (*Checker) Description() string {
	return "Checks Databricks notebook source files for cell count and %run usage"
}

// Messages implements lint.Checker.
func (*Checker) Messages() []lint.MessageDef {
	return []lint.MessageDef{TooManyCellsMessage, PercentRunMessage}
}

// Options implements lint.Checker.
func (*Checker) Options() []lint.OptionDef {
	return []lint.OptionDef{{
		Name:    OptionMaxCells,
		Type:    "int",
		Default: DefaultMaxCells,
		Help:    "Maximum number of cells in the notebook",
	}}
}

// ConfigFromOptions builds a scanner Config from checker options.
func ConfigFromOptions(opts map[string]any) (Config, error) {
	maxCells, err := lint.GetIntOption(opts, OptionMaxCells, DefaultMaxCells)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{MaxCells: maxCells}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateOptions implements lint.OptionValidator.
func (*Checker) ValidateOptions(opts map[string]any) error {
	_, err := ConfigFromOptions(opts)
	return err
}

// Check implements lint.Checker.
func (c *Checker) Check(lines iter.Seq2[lint.SourceLine, error], opts map[string]any) ([]lint.Diagnostic, error) {
	_, diags, err := c.CheckClassified(lines, opts)
	return diags, err
}

// Classify implements lint.Classifier. Only the first line is read.
func (*Checker) Classify(lines iter.Seq2[lint.SourceLine, error]) (bool, error) {
	return IsNotebook(lines)
}

// CheckClassified implements lint.Classifier.
func (*Checker) CheckClassified(lines iter.Seq2[lint.SourceLine, error], opts map[string]any) (bool, []lint.Diagnostic, error) {
	cfg, err := ConfigFromOptions(opts)
	if err != nil {
		return false, nil, err
	}

	s, err := scan(lines, cfg)
	if err != nil {
		return false, nil, err
	}

	findings := s.Findings()
	diags := make([]lint.Diagnostic, 0, len(findings))
	for _, f := range findings {
		def, ok := messagesByKind[f.Kind]
		if !ok {
			return false, nil, fmt.Errorf("no message defined for finding kind %s", f.Kind)
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   def.ID,
			Symbol:   def.Symbol,
			Checker:  CheckerName,
			Severity: def.Severity,
			Message:  f.Message,
			Line:     f.Line,
		})
	}
	return s.IsNotebook(), diags, nil
}
