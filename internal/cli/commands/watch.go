package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/internal/watch"
	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	LintOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Lint notebooks again whenever they change",
		Long: `Lint the given paths once, then keep watching them.

Every time a matching file is written or created, only the changed files
are linted again and the report is printed. New subdirectories are picked
up automatically. Stop with Ctrl-C.`,
		Example: `  # Watch the current directory
  nblint watch

  # Watch one folder with a stricter cell limit
  nblint watch jobs/ --max-cells 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: "+strings.Join(output.ModeNames(), ", "))
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Message IDs or symbols to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity: error, warning, info, hint (default from config)")
	cmd.Flags().IntVar(&opts.MaxCells, "max-cells", 0, fmt.Sprintf("Maximum cells per notebook (default %d)", notebook.DefaultMaxCells))
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-linting")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	opts.MaxCellsSet = cmd.Flags().Changed("max-cells")
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	lintCfg, threshold, err := buildLintConfig(cmdCtx, &opts.LintOptions)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, cmdCtx, cmdCtx.NewEngine(lintCfg), paths, threshold, opts.Debounce)
}

// watchLoop lints paths once and then re-lints changed files until ctx is
// done. Lint issues never end the loop.
func watchLoop(ctx context.Context, cmdCtx *CommandContext, eng *engine.Engine, paths []string, threshold lint.Severity, debounce time.Duration) error {
	r := cmdCtx.Renderer

	res, err := eng.Run(ctx, paths)
	if err != nil {
		return err
	}
	if err := reportLint(cmdCtx, res, threshold); err != nil && !errors.Is(err, ErrLintIssues) {
		return err
	}

	w, err := watch.New(watch.Config{
		Debounce: debounce,
		Match:    eng.MatchesFile,
		SkipDir:  eng.SkipsDir,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	cmdCtx.Logger.Info("watching for changes", "paths", paths)
	r.Println(r.Muted(fmt.Sprintf("Watching %s for changes...", strings.Join(paths, ", "))))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		files := existingFiles(changed)
		if len(files) == 0 {
			return
		}

		res, err := eng.LintFiles(ctx, files)
		if err != nil {
			if ctx.Err() == nil {
				r.Error(err.Error())
			}
			return
		}

		r.Println("")
		r.Println(r.Muted(fmt.Sprintf("[%s] %d changed", time.Now().Format(time.TimeOnly), len(files))))
		if err := reportLint(cmdCtx, res, threshold); err != nil && !errors.Is(err, ErrLintIssues) {
			r.Error(err.Error())
		}
	})
}

// existingFiles drops paths that were removed before the batch fired, as
// happens with editors that write through a temporary file.
func existingFiles(paths []string) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			out = append(out, p)
		}
	}
	return out
}
