package notebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

func TestChecker_Metadata(t *testing.T) {
	c := notebook.NewChecker()

	var _ lint.Checker = c

	assert.Equal(t, "databricks-notebooks", c.Name())
	assert.NotEmpty(t, c.Description())

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "E9996", msgs[0].ID)
	assert.Equal(t, "notebooks-too-many-cells", msgs[0].Symbol)
	assert.Equal(t, "E9994", msgs[1].ID)
	assert.Equal(t, "notebooks-percent-run", msgs[1].Symbol)

	opts := c.Options()
	require.Len(t, opts, 1)
	assert.Equal(t, "max-cells", opts[0].Name)
	assert.Equal(t, 75, opts[0].Default)
}

func TestChecker_Check(t *testing.T) {
	c := notebook.NewChecker()
	input := []string{
		"# Databricks notebook source\n",
		"x = 1\n",
		"# COMMAND ----------\n",
		"# MAGIC %run ./util\n",
	}

	diags, err := c.Check(lint.LinesOf(input...), nil)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "E9994", d.RuleID)
	assert.Equal(t, "notebooks-percent-run", d.Symbol)
	assert.Equal(t, notebook.CheckerName, d.Checker)
	assert.Equal(t, lint.SeverityError, d.Severity)
	assert.Equal(t, 4, d.Line)
	assert.Equal(t, "Using %run is not allowed", d.Message)
}

func TestChecker_MaxCellsOption(t *testing.T) {
	c := notebook.NewChecker()
	input := []string{
		"# Databricks notebook source\n",
		"# COMMAND ----------\n",
		"a\n",
	}

	tests := []struct {
		name      string
		opts      map[string]any
		wantDiags int
		wantErr   bool
	}{
		{name: "default limit", opts: nil, wantDiags: 0},
		{name: "int", opts: map[string]any{"max-cells": 1}, wantDiags: 2},
		{name: "float from JSON", opts: map[string]any{"max-cells": float64(1)}, wantDiags: 2},
		{name: "string from env", opts: map[string]any{"max-cells": "1"}, wantDiags: 2},
		{name: "zero", opts: map[string]any{"max-cells": 0}, wantErr: true},
		{name: "negative", opts: map[string]any{"max-cells": -1}, wantErr: true},
		{name: "not a number", opts: map[string]any{"max-cells": "lots"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := c.Check(lint.LinesOf(input...), tt.opts)
			if tt.wantErr {
				require.ErrorIs(t, err, lint.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			assert.Len(t, diags, tt.wantDiags)
			for _, d := range diags {
				assert.Equal(t, "E9996", d.RuleID)
				assert.Equal(t, "Notebooks should not have more than 1 cells", d.Message)
			}
		})
	}
}

func TestConfigFromOptions(t *testing.T) {
	cfg, err := notebook.ConfigFromOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, notebook.DefaultConfig(), cfg)

	cfg, err = notebook.ConfigFromOptions(map[string]any{"max-cells": 10})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxCells)

	for _, bad := range []any{0, -1, "0"} {
		_, err = notebook.ConfigFromOptions(map[string]any{"max-cells": bad})
		assert.ErrorIs(t, err, lint.ErrInvalidOption, "max-cells=%v", bad)
		assert.ErrorContains(t, err, "must be positive")
	}
}

func TestChecker_Classify(t *testing.T) {
	var c lint.Classifier = notebook.NewChecker()

	tests := []struct {
		name      string
		lines     []string
		wantMatch bool
		wantDiags int
	}{
		{name: "notebook with run", lines: []string{"# Databricks notebook source\n", "# MAGIC %run ./x\n"}, wantMatch: true, wantDiags: 1},
		{name: "clean notebook", lines: []string{"# Databricks notebook source\n", "x = 1\n"}, wantMatch: true},
		{name: "plain module", lines: []string{"import os\n", "# MAGIC %run ./x\n"}},
		{name: "empty file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := c.Classify(lint.LinesOf(tt.lines...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, matched)

			matched, diags, err := c.CheckClassified(lint.LinesOf(tt.lines...), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, matched)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestChecker_ValidateOptions(t *testing.T) {
	var v lint.OptionValidator = notebook.NewChecker()

	assert.NoError(t, v.ValidateOptions(nil))
	assert.NoError(t, v.ValidateOptions(map[string]any{"max-cells": "12"}))
	assert.ErrorIs(t, v.ValidateOptions(map[string]any{"max-cells": 0}), lint.ErrInvalidOption)
}
