package lint

// Config controls which messages are reported and how.
// Messages may be referenced by ID ("E9996") or symbol ("notebooks-too-many-cells").
type Config struct {
	// DisabledRules contains message IDs or symbols to drop
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of messages
	SeverityOverrides map[string]Severity

	// CheckerOptions holds per-checker options keyed by checker name
	CheckerOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all messages enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		CheckerOptions:    make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the message should be dropped.
func (c *Config) IsDisabled(id, symbol string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[id] || (symbol != "" && c.DisabledRules[symbol])
}

// GetSeverity returns the severity for a message, applying any override.
// An override keyed by ID wins over one keyed by symbol.
func (c *Config) GetSeverity(id, symbol string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[id]; ok {
			return sev
		}
		if sev, ok := c.SeverityOverrides[symbol]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetCheckerOptions returns the options configured for a checker.
func (c *Config) GetCheckerOptions(name string) map[string]any {
	if c == nil {
		return nil
	}
	return c.CheckerOptions[name]
}

// Disable disables a message by ID or symbol.
func (c *Config) Disable(key string) *Config {
	c.DisabledRules[key] = true
	return c
}

// SetSeverity overrides the severity for a message.
func (c *Config) SetSeverity(key string, severity Severity) *Config {
	c.SeverityOverrides[key] = severity
	return c
}

// SetCheckerOptions merges options for a checker.
func (c *Config) SetCheckerOptions(name string, opts map[string]any) *Config {
	existing, ok := c.CheckerOptions[name]
	if !ok {
		existing = make(map[string]any, len(opts))
		c.CheckerOptions[name] = existing
	}
	for k, v := range opts {
		existing[k] = v
	}
	return c
}
