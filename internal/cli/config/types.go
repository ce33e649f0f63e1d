// Package config provides configuration management for the nblint CLI.
//
// Configuration is layered: defaults, then a YAML config file, then NBLINT_*
// environment variables, then explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool       `koanf:"verbose"`
	OutputFormat string     `koanf:"output"`
	Workers      int        `koanf:"workers"`
	Include      []string   `koanf:"include"`
	Exclude      []string   `koanf:"exclude"`
	Lint         LintConfig `koanf:"lint"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains message IDs or symbols to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps message ID or symbol to a severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// MinSeverity is the lowest severity that is reported and fails the run
	MinSeverity string `koanf:"min_severity"`

	// Rules contains checker-specific options keyed by checker name
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds checker-specific configuration options.
type RuleOptions map[string]any

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMinSeverity = "warning"
	DefaultWorkers     = 0 // NumCPU
)

// ConfigFileNames are searched, in order, in each candidate directory.
var ConfigFileNames = []string{".nblint.yaml", ".nblint.yml", "nblint.yaml", "nblint.yml"}

