package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/internal/cli/config"
	"github.com/leapstack-labs/nblint/internal/cli/testutil"
	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/rules"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string)
		args     []string
		wantErr  bool
		wantFile string
	}{
		{
			name:     "init empty directory",
			wantFile: InitFileName,
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				testutil.WriteFile(t, filepath.Join(dir, InitFileName), "existing")
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				testutil.WriteFile(t, filepath.Join(dir, InitFileName), "existing")
			},
			args:     []string{"--force"},
			wantFile: InitFileName,
		},
		{
			name:     "init new subdirectory",
			args:     []string{"sub/dir"},
			wantFile: filepath.Join("sub", "dir", InitFileName),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testutil.Chdir(t, tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--force")
				content, readErr := os.ReadFile(filepath.Join(tmpDir, InitFileName))
				require.NoError(t, readErr)
				assert.Equal(t, "existing", string(content), "existing file must be untouched")
				return
			}
			require.NoError(t, err)

			content, err := os.ReadFile(filepath.Join(tmpDir, tt.wantFile))
			require.NoError(t, err)
			assert.Contains(t, string(content), "max-cells: 75")
			assert.Contains(t, buf.String(), "Created")
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
}

// The generated file must load cleanly and reproduce the defaults.
func TestInitCreatesValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.Chdir(t, tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	defaults := config.Default()
	assert.Equal(t, filepath.Join(tmpDir, InitFileName), cfg.File)
	assert.Equal(t, defaults.OutputFormat, cfg.OutputFormat)
	assert.Equal(t, defaults.Include, cfg.Include)
	assert.Equal(t, defaults.Exclude, cfg.Exclude)
	assert.Equal(t, lint.SeverityWarning, cfg.MinSeverity())

	lintCfg, err := cfg.BuildLintConfig(rules.NewDefaultRegistry())
	require.NoError(t, err)
	assert.EqualValues(t, 75, lintCfg.GetCheckerOptions("databricks-notebooks")["max-cells"])
}

func TestRenderInitConfig(t *testing.T) {
	data, err := renderInitConfig()
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# nblint configuration")
	assert.Contains(t, content, "output: auto")
	assert.Contains(t, content, "min_severity: warning")
	assert.Contains(t, content, "databricks-notebooks:")
}
