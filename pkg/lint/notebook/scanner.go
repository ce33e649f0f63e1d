package notebook

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/leapstack-labs/nblint/pkg/lint"
)

// DefaultMaxCells is the cell limit used when none is configured.
const DefaultMaxCells = 75

// Line markers. Each includes the terminator, so CRLF files are not notebooks.
var (
	headerMarker = []byte("# Databricks notebook source\n")
	cellMarker   = []byte("# COMMAND ----------\n")
	runPrefix    = []byte("# MAGIC %run")
)

// Kind identifies the rule a finding violates.
type Kind int

// Finding kinds.
const (
	TooManyCells Kind = iota
	PercentRunUsed
)

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	switch k {
	case TooManyCells:
		return "too-many-cells"
	case PercentRunUsed:
		return "percent-run"
	default:
		return "unknown"
	}
}

// Finding is one rule violation at a line.
type Finding struct {
	Kind    Kind
	Line    int
	Message string
}

// Config holds the scanner thresholds.
type Config struct {
	// MaxCells is the highest cell count allowed before TooManyCells fires.
	MaxCells int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxCells: DefaultMaxCells}
}

// Validate checks that the thresholds are usable.
func (c Config) Validate() error {
	if c.MaxCells <= 0 {
		return fmt.Errorf("%w: max-cells must be positive, got %d", lint.ErrInvalidOption, c.MaxCells)
	}
	return nil
}

// State is the scanner's position in its lifecycle.
type State int

// Scanner states. Unclassified moves to Rejected or Scanning on the first
// line; Scanning stays until Finish moves it to Done.
const (
	Unclassified State = iota
	Scanning
	Rejected
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unclassified:
		return "unclassified"
	case Scanning:
		return "scanning"
	case Rejected:
		return "rejected"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Scanner is the incremental form of Scan. Feed it lines in order.
// A Scanner serves exactly one file.
type Scanner struct {
	cfg      Config
	state    State
	cells    int
	findings []Finding
}

// NewScanner creates a scanner for one file.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg, state: Unclassified}
}

// Feed processes the next line. It returns false once the scanner wants no
// more input, which happens when the first line rejects the file.
func (s *Scanner) Feed(line lint.SourceLine) bool {
	switch s.state {
	case Unclassified:
		if !bytes.Equal(line.Text, headerMarker) {
			s.state = Rejected
			return false
		}
		s.state = Scanning
		s.cells = 1
		return true
	case Scanning:
		s.check(line)
		return true
	default:
		return false
	}
}

func (s *Scanner) check(line lint.SourceLine) {
	if bytes.Equal(line.Text, cellMarker) {
		s.cells++
	}
	// Past the limit the run check is skipped for this line.
	if s.cells > s.cfg.MaxCells {
		s.findings = append(s.findings, Finding{
			Kind:    TooManyCells,
			Line:    line.Number,
			Message: fmt.Sprintf("Notebooks should not have more than %d cells", s.cfg.MaxCells),
		})
		return
	}
	if bytes.HasPrefix(line.Text, runPrefix) {
		s.findings = append(s.findings, Finding{
			Kind:    PercentRunUsed,
			Line:    line.Number,
			Message: "Using %run is not allowed",
		})
	}
}

// Finish ends the scan and returns the findings in detection order.
// A rejected or empty file has no findings.
func (s *Scanner) Finish() []Finding {
	if s.state == Scanning {
		s.state = Done
	}
	return s.findings
}

// Findings returns the findings recorded so far without ending the scan.
func (s *Scanner) Findings() []Finding { return s.findings }

// State returns the current state.
func (s *Scanner) State() State { return s.state }

// Cells returns the number of cells seen so far.
func (s *Scanner) Cells() int { return s.cells }

// IsNotebook reports whether the first line accepted the file.
func (s *Scanner) IsNotebook() bool { return s.state == Scanning || s.state == Done }

// Scan classifies the file from its first line and, for notebooks, checks
// every following line. Lines are read once, in order; a rejected file is
// not read past line 1. Stream errors are returned unchanged.
func Scan(lines iter.Seq2[lint.SourceLine, error], cfg Config) ([]Finding, error) {
	s, err := scan(lines, cfg)
	if err != nil {
		return nil, err
	}
	return s.Findings(), nil
}

// scan runs a Scanner to completion and returns it for inspection.
func scan(lines iter.Seq2[lint.SourceLine, error], cfg Config) (*Scanner, error) {
	s := NewScanner(cfg)
	for line, err := range lines {
		if err != nil {
			return nil, err
		}
		if !s.Feed(line) {
			break
		}
	}
	s.Finish()
	return s, nil
}

// IsNotebook reports whether the stream starts with the notebook header.
// Only the first line is read.
func IsNotebook(lines iter.Seq2[lint.SourceLine, error]) (bool, error) {
	for line, err := range lines {
		if err != nil {
			return false, err
		}
		return bytes.Equal(line.Text, headerMarker), nil
	}
	return false, nil
}
