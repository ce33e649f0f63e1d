package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

func TestRegistry(t *testing.T) {
	reg := lint.NewRegistry()
	assert.Equal(t, 0, reg.Len())

	require.NoError(t, reg.Register(notebook.NewChecker()))
	require.NoError(t, reg.Register(&lineCountChecker{}))
	assert.Equal(t, 2, reg.Len())

	err := reg.Register(notebook.NewChecker())
	require.ErrorIs(t, err, lint.ErrDuplicateChecker)

	c, err := reg.Get("databricks-notebooks")
	require.NoError(t, err)
	assert.Equal(t, "databricks-notebooks", c.Name())

	_, err = reg.Get("dbutils")
	require.ErrorIs(t, err, lint.ErrUnknownChecker)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "databricks-notebooks", all[0].Name())
	assert.Equal(t, "long-lines", all[1].Name())
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := lint.NewRegistry()
	reg.MustRegister(notebook.NewChecker())
	assert.Panics(t, func() { reg.MustRegister(notebook.NewChecker()) })
}

func TestRegistry_Rules(t *testing.T) {
	reg := lint.NewRegistry()
	reg.MustRegister(notebook.NewChecker())

	rules := reg.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "E9994", rules[0].ID)
	assert.Equal(t, "E9996", rules[1].ID)
	assert.Equal(t, "databricks-notebooks", rules[0].Checker)
	assert.Equal(t, "https://nblint.dev/docs/rules/notebooks-percent-run", rules[0].DocURL)

	info, ok := reg.LookupRule("notebooks-too-many-cells")
	require.True(t, ok)
	assert.Equal(t, "E9996", info.ID)
	require.Len(t, info.Options, 1)
	assert.Equal(t, "max-cells", info.Options[0].Name)

	_, ok = reg.LookupRule("E0000")
	assert.False(t, ok)
}

func TestRegistry_Messages(t *testing.T) {
	reg := lint.NewRegistry()
	reg.MustRegister(&lineCountChecker{})
	reg.MustRegister(notebook.NewChecker())

	msgs := reg.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "E9994", msgs[0].ID)
	assert.Equal(t, "E9996", msgs[1].ID)
	assert.Equal(t, "T0001", msgs[2].ID)

	assert.Empty(t, lint.NewRegistry().Messages())
}
