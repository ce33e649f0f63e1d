package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores checkers for discovery. It is owned by the host and
// composed at startup; there is no process-wide registry.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker // keyed by name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
	}
}

// Register adds a checker. Names must be unique.
func (r *Registry) Register(c Checker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[c.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, c.Name())
	}
	r.checkers[c.Name()] = c
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for composing built-in checkers.
func (r *Registry) MustRegister(c Checker) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Get returns a checker by name.
func (r *Registry) Get(name string) (Checker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checkers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChecker, name)
	}
	return c, nil
}

// All returns all registered checkers sorted by name.
func (r *Registry) All() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkers := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	sort.Slice(checkers, func(i, j int) bool {
		return checkers[i].Name() < checkers[j].Name()
	})
	return checkers
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checkers)
}

// Messages returns the message definitions of every checker, sorted by ID.
func (r *Registry) Messages() []MessageDef {
	var msgs []MessageDef
	for _, c := range r.All() {
		msgs = append(msgs, c.Messages()...)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].ID < msgs[j].ID
	})
	return msgs
}

// Rules returns metadata for every message of every checker, sorted by ID.
func (r *Registry) Rules() []RuleInfo {
	var rules []RuleInfo
	for _, c := range r.All() {
		for _, m := range c.Messages() {
			rules = append(rules, RuleInfo{
				MessageDef: m,
				Checker:    c.Name(),
				Options:    c.Options(),
				DocURL:     BuildDocURL(m.Symbol),
			})
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// LookupRule finds a message by ID or symbol.
func (r *Registry) LookupRule(key string) (RuleInfo, bool) {
	for _, info := range r.Rules() {
		if info.ID == key || info.Symbol == key {
			return info, true
		}
	}
	return RuleInfo{}, false
}
