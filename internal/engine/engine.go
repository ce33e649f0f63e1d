// Package engine runs lint checkers over sets of files.
// It handles file discovery, bounded parallel analysis, and result summaries.
package engine

import (
	"log/slog"
	"runtime"

	"github.com/leapstack-labs/nblint/pkg/lint"
)

// Default discovery settings.
var (
	DefaultInclude = []string{"*.py"}
	DefaultExclude = []string{".git", ".venv", "node_modules"}
)

// Engine orchestrates linting of many files. Each file gets its own
// checker passes; no state is shared between files.
type Engine struct {
	analyzer *lint.Analyzer
	include  []string
	exclude  []string
	workers  int

	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Include holds glob patterns matched against file base names during
	// directory walks. Empty means DefaultInclude.
	Include []string
	// Exclude holds glob patterns for directory or file base names to skip.
	// Nil means DefaultExclude; an empty non-nil slice excludes nothing.
	Exclude []string
	// Workers bounds parallel file analysis. Zero or less means NumCPU.
	Workers int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine that runs the checkers of registry under lintCfg.
func New(registry *lint.Registry, lintCfg *lint.Config, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = lint.NewRegistry()
	}

	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	exclude := cfg.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Debug("initializing engine",
		slog.Int("workers", workers),
		slog.Any("include", include),
		slog.Int("checkers", registry.Len()))

	return &Engine{
		analyzer: lint.NewAnalyzer(registry, lintCfg),
		include:  include,
		exclude:  exclude,
		workers:  workers,
		logger:   logger,
	}
}

// Workers returns the parallelism bound.
func (e *Engine) Workers() int { return e.workers }
