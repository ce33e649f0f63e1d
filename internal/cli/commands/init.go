package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/nblint/internal/cli/config"
	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

// InitFileName is the config file written by init.
const InitFileName = ".nblint.yaml"

const initHeader = `# nblint configuration
#
# Settings can be overridden with NBLINT_* environment variables
# (NBLINT_LINT__MIN_SEVERITY=error) or command-line flags.
`

// initConfig mirrors config.Config with YAML tags for the starter file.
type initConfig struct {
	Output  string   `yaml:"output"`
	Workers int      `yaml:"workers"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Lint    initLint `yaml:"lint"`
}

type initLint struct {
	MinSeverity string                    `yaml:"min_severity"`
	Disabled    []string                  `yaml:"disabled"`
	Severity    map[string]string         `yaml:"severity"`
	Rules       map[string]map[string]any `yaml:"rules"`
}

func defaultInitConfig() initConfig {
	return initConfig{
		Output:  config.DefaultOutput,
		Workers: config.DefaultWorkers,
		Include: engine.DefaultInclude,
		Exclude: engine.DefaultExclude,
		Lint: initLint{
			MinSeverity: config.DefaultMinSeverity,
			Disabled:    []string{},
			Severity:    map[string]string{},
			Rules: map[string]map[string]any{
				notebook.CheckerName: {notebook.OptionMaxCells: notebook.DefaultMaxCells},
			},
		},
	}
}

// renderInitConfig encodes the starter config with its comment header.
func renderInitConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(initHeader)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defaultInitConfig()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter nblint configuration",
		Long: `Write a .nblint.yaml file with the default settings.

The file lists every option with its default value so it can be edited
in place. Existing files are left untouched unless --force is given.`,
		Example: `  # Initialize in current directory
  nblint init

  # Initialize in another directory
  nblint init path/to/repo

  # Overwrite an existing config
  nblint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}
			return runInit(cmdCtx, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmdCtx *CommandContext, dir string, force bool) error {
	r := cmdCtx.Renderer

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, InitFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	data, err := renderInitConfig()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmdCtx.Logger.Debug("wrote config", "path", path)

	r.Success("Created " + path)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust lint.rules." + notebook.CheckerName + "." + notebook.OptionMaxCells + " for your notebooks")
	r.Println("  2. Run 'nblint lint' to scan the repository")
	r.Println("  3. Run 'nblint rules' to see all rules")

	return nil
}
