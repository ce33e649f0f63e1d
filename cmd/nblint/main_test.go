// Package main provides end-to-end tests for the nblint CLI.
package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/internal/cli"
	"github.com/leapstack-labs/nblint/internal/cli/output"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "notebooks"))
	require.NoError(t, err)
	return dir
}

type finding struct {
	rule string
	line int
}

func lintJSON(t *testing.T, args ...string) (int, output.LintOutput) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Execute(append([]string{"lint", "-f", "json"}, args...), &stdout, &stderr)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result), "stderr: %s", stderr.String())
	return code, result
}

func TestLint_Fixtures(t *testing.T) {
	dir := testdataDir(t)

	tests := []struct {
		file     string
		wantCode int
		want     []finding
	}{
		{file: "clean.py", wantCode: cli.ExitOK},
		{file: "plain_module.py", wantCode: cli.ExitOK},
		{file: "crlf_header.py", wantCode: cli.ExitOK},
		{
			file:     "percent_run.py",
			wantCode: cli.ExitIssues,
			want:     []finding{{"E9994", 4}},
		},
		{
			file:     "too_many_cells.py",
			wantCode: cli.ExitIssues,
			want:     []finding{{"E9996", 151}, {"E9996", 152}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			code, result := lintJSON(t, filepath.Join(dir, tt.file))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, 1, result.Summary.FilesScanned)

			var got []finding
			for _, f := range result.Files {
				for _, d := range f.Diagnostics {
					got = append(got, finding{d.RuleID, d.Line})
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLint_FixtureDirectory(t *testing.T) {
	code, result := lintJSON(t, testdataDir(t))

	assert.Equal(t, cli.ExitIssues, code)
	assert.Equal(t, 5, result.Summary.FilesScanned)
	assert.Equal(t, 3, result.Summary.Notebooks)
	assert.Equal(t, 3, result.Summary.TotalIssues)
	assert.Equal(t, 3, result.Summary.Errors)
}

func TestLint_MaxCellsMessage(t *testing.T) {
	code, result := lintJSON(t, "--max-cells", "2", filepath.Join(testdataDir(t), "percent_run.py"))
	assert.Equal(t, cli.ExitIssues, code)

	require.Len(t, result.Files, 1)
	diags := result.Files[0].Diagnostics
	require.Len(t, diags, 3)
	assert.Equal(t, "Using %run is not allowed", diags[0].Message)
	assert.Equal(t, 5, diags[1].Line)
	assert.Equal(t, "Notebooks should not have more than 2 cells", diags[1].Message)
	assert.Equal(t, 6, diags[2].Line)
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.Execute([]string{"version"}, &stdout, &stderr)

	assert.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stdout.String(), "nblint v"+cli.Version)
}
