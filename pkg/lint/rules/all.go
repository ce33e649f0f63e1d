package rules

import (
	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

// builtin lists the constructors of every built-in checker.
var builtin = []func() lint.Checker{
	func() lint.Checker { return notebook.NewChecker() },
}

// NewDefaultRegistry returns a registry holding every built-in checker.
// Each call returns a fresh registry the caller owns.
func NewDefaultRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	for _, newChecker := range builtin {
		reg.MustRegister(newChecker())
	}
	return reg
}
