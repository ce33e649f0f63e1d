// Package commands implements the nblint subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/nblint/internal/cli/config"
	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/rules"
)

// ErrLintIssues is returned when a lint run reports issues at or above the
// severity threshold. The process exits non-zero.
var ErrLintIssues = errors.New("lint issues found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *lint.Registry
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
// A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid format %q: must be one of %s",
			mode, strings.Join(output.ModeNames(), ", "))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Registry: rules.NewDefaultRegistry(),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// NewEngine creates a lint engine from the configuration and lintCfg.
func (c *CommandContext) NewEngine(lintCfg *lint.Config) *engine.Engine {
	return engine.New(c.Registry, lintCfg, engine.Config{
		Include: c.Cfg.Include,
		Exclude: c.Cfg.Exclude,
		Workers: c.Cfg.Workers,
		Logger:  c.Logger,
	})
}
