package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/pkg/lint"
)

// Validate checks if the configuration is valid.
// Checker-specific options are checked by BuildLintConfig, which needs the registry.
func (c *Config) Validate() error {
	var errs []error

	if !output.Mode(c.OutputFormat).Valid() {
		errs = append(errs, fmt.Errorf("invalid output %q: must be one of %s",
			c.OutputFormat, strings.Join(output.ModeNames(), ", ")))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("invalid workers %d: must be >= 0", c.Workers))
	}
	if c.Lint.MinSeverity != "" {
		if _, ok := lint.ParseSeverity(c.Lint.MinSeverity); !ok {
			errs = append(errs, fmt.Errorf("invalid lint.min_severity %q", c.Lint.MinSeverity))
		}
	}
	for key, sev := range c.Lint.Severity {
		if _, ok := lint.ParseSeverity(sev); !ok {
			errs = append(errs, fmt.Errorf("invalid severity %q for %s", sev, key))
		}
	}

	return errors.Join(errs...)
}

// MinSeverity returns the parsed reporting threshold.
func (c *Config) MinSeverity() lint.Severity {
	sev, _ := lint.ParseSeverity(c.Lint.MinSeverity)
	return sev
}

// BuildLintConfig converts the lint section into a lint.Config for the
// checkers in registry. Unknown checker names and unusable options are errors.
func (c *Config) BuildLintConfig(registry *lint.Registry) (*lint.Config, error) {
	lintCfg := lint.NewConfig()

	for _, id := range c.Lint.Disabled {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(id)
		}
	}
	for id, sev := range c.Lint.Severity {
		s, ok := lint.ParseSeverity(sev)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for %s", sev, id)
		}
		lintCfg.SetSeverity(id, s)
	}

	for name, opts := range c.Lint.Rules {
		checkerName := normalizeKey(name)
		checker, err := registry.Get(checkerName)
		if err != nil {
			return nil, fmt.Errorf("lint.rules.%s: %w", name, err)
		}

		known := make(map[string]bool)
		for _, def := range checker.Options() {
			known[def.Name] = true
		}
		normalized := make(map[string]any, len(opts))
		for key, val := range opts {
			optName := normalizeKey(key)
			if !known[optName] {
				return nil, fmt.Errorf("lint.rules.%s.%s: %w: unknown option", name, key, lint.ErrInvalidOption)
			}
			normalized[optName] = val
		}

		if v, ok := checker.(lint.OptionValidator); ok {
			if err := v.ValidateOptions(normalized); err != nil {
				return nil, fmt.Errorf("lint.rules.%s: %w", name, err)
			}
		}
		lintCfg.SetCheckerOptions(checkerName, normalized)
	}

	return lintCfg, nil
}

// normalizeKey maps env-style keys (databricks_notebooks) to their
// kebab-case names (databricks-notebooks).
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}
