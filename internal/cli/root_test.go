package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "nblint", cmd.Use)
	for _, name := range []string{"lint", "rules", "init", "watch", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "verbose", "output", "workers"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestExecute_ExitCodes(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.Chdir(t, dir)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "findings", args: []string{"lint"}, wantCode: ExitIssues},
		{name: "clean file", args: []string{"lint", filepath.Join("jobs", "report.py")}, wantCode: ExitOK},
		{name: "disabled finding", args: []string{"lint", "--disable", "E9994"}, wantCode: ExitOK},
		{name: "missing path", args: []string{"lint", "nope"}, wantCode: ExitError},
		{name: "bad output flag", args: []string{"lint", "-o", "xml"}, wantCode: ExitError},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: ExitError},
		{name: "version", args: []string{"version"}, wantCode: ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr)
			if tt.wantCode == ExitError {
				assert.Contains(t, stderr, "Error:")
			} else {
				assert.NotContains(t, stderr, "Error:")
			}
		})
	}
}

func TestExecute_ConfigFileApplies(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, filepath.Join(dir, ".nblint.yaml"), `
output: json
lint:
  rules:
    databricks-notebooks:
      max-cells: 2
`)
	testutil.Chdir(t, dir)

	code, stdout, _ := run(t, "lint")
	assert.Equal(t, ExitIssues, code)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 3, result.Summary.TotalIssues)
}

func TestExecute_OutputFlagOverridesConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, filepath.Join(dir, ".nblint.yaml"), "output: json\n")
	testutil.Chdir(t, dir)

	_, stdout, _ := run(t, "-o", "markdown", "lint")
	assert.Contains(t, stdout, "# Lint Results")
}

func TestExecute_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, ".nblint.yaml"), "workers: -2\n")
	testutil.Chdir(t, dir)

	code, _, stderr := run(t, "lint")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "workers")
}

func TestExecute_VerboseLogsToStderr(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.Chdir(t, dir)

	_, stdout, stderr := run(t, "-v", "lint", "-f", "json")
	assert.Contains(t, stderr, "level=DEBUG")
	assert.NotContains(t, stdout, "level=DEBUG")
}

func TestExecute_SetsToolVersion(t *testing.T) {
	NewRootCmd()
	assert.Equal(t, Version, output.ToolVersion)
}

func TestCompletionCommand(t *testing.T) {
	code, stdout, _ := run(t, "completion", "bash")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "nblint")
}
