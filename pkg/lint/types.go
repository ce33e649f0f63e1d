package lint

import (
	"errors"
	"iter"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnknownChecker is returned when a checker name is not registered.
	ErrUnknownChecker = errors.New("unknown checker")
	// ErrDuplicateChecker is returned when a checker name is registered twice.
	ErrDuplicateChecker = errors.New("checker already registered")
	// ErrInvalidOption is returned when a checker option has an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)

// =============================================================================
// Checker Definitions
// =============================================================================

// Checker is a named rule unit that inspects one file as a line stream.
// Checkers hold no per-file state between calls to Check.
type Checker interface {
	// Name returns the unique checker name, e.g. "databricks-notebooks".
	Name() string

	// Description returns a human-readable description of the checker.
	Description() string

	// Messages returns the messages this checker can emit.
	Messages() []MessageDef

	// Options returns the configuration options this checker accepts.
	Options() []OptionDef

	// Check consumes lines in a single forward pass and returns diagnostics
	// in the order they were detected. Errors from the stream are returned
	// unchanged.
	Check(lines iter.Seq2[SourceLine, error], opts map[string]any) ([]Diagnostic, error)
}

// OptionValidator is implemented by checkers that can check their options
// ahead of a run, so bad configuration fails before any file is read.
type OptionValidator interface {
	ValidateOptions(opts map[string]any) error
}

// Classifier is implemented by checkers that apply only to some files, such
// as notebook sources among plain Python modules.
type Classifier interface {
	// Classify reports whether the stream is a file the checker applies to.
	// Implementations should read no more than they need.
	Classify(lines iter.Seq2[SourceLine, error]) (bool, error)

	// CheckClassified is Check that also reports the classification made
	// during the same pass over the stream.
	CheckClassified(lines iter.Seq2[SourceLine, error], opts map[string]any) (bool, []Diagnostic, error)
}

// MessageDef describes one kind of finding a checker can emit.
type MessageDef struct {
	ID          string   `json:"id"`          // Stable identifier, e.g. "E9996"
	Symbol      string   `json:"symbol"`      // Symbolic name, e.g. "notebooks-too-many-cells"
	Template    string   `json:"template"`    // Message template as reported
	Description string   `json:"description"` // When the message is used
	Severity    Severity `json:"severity"`    // Default severity

	// Documentation fields for the rules command
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

// OptionDef describes a checker option.
type OptionDef struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default"`
	Help    string `json:"help"`
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string   `json:"rule_id"`
	Symbol   string   `json:"symbol"`
	Checker  string   `json:"checker"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	FilePath string   `json:"file,omitempty"`

	DocumentationURL string `json:"documentation_url,omitempty"`
}

// RuleInfo provides metadata about a message for documentation/tooling.
type RuleInfo struct {
	MessageDef
	Checker string      `json:"checker"`
	Options []OptionDef `json:"options,omitempty"`
	DocURL  string      `json:"documentation_url"`
}
