package engine

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/nblint/pkg/lint"
	"github.com/leapstack-labs/nblint/pkg/lint/notebook"
)

// FileResult holds the outcome of linting one file.
type FileResult struct {
	Path        string            `json:"path"`
	Notebook    bool              `json:"notebook"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// Summary aggregates counts over a run.
type Summary struct {
	FilesScanned int `json:"files_scanned"`
	Notebooks    int `json:"notebooks"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Info         int `json:"info"`
	Hints        int `json:"hints"`
}

// Add counts one file result into the summary.
func (s *Summary) Add(fr FileResult) {
	s.FilesScanned++
	if fr.Notebook {
		s.Notebooks++
	}
	for _, d := range fr.Diagnostics {
		s.TotalIssues++
		switch d.Severity {
		case lint.SeverityError:
			s.Errors++
		case lint.SeverityWarning:
			s.Warnings++
		case lint.SeverityInfo:
			s.Info++
		case lint.SeverityHint:
			s.Hints++
		}
	}
}

// Result is the outcome of a lint run.
type Result struct {
	Files    []FileResult
	Summary  Summary
	Duration time.Duration
}

// FilterSeverity returns a copy of the result keeping only diagnostics at or
// above threshold. File and notebook counts are unchanged.
func (r *Result) FilterSeverity(threshold lint.Severity) *Result {
	filtered := &Result{Duration: r.Duration, Files: make([]FileResult, 0, len(r.Files))}
	for _, fr := range r.Files {
		kept := make([]lint.Diagnostic, 0, len(fr.Diagnostics))
		for _, d := range fr.Diagnostics {
			if d.Severity.AtLeast(threshold) {
				kept = append(kept, d)
			}
		}
		fr.Diagnostics = kept
		filtered.Files = append(filtered.Files, fr)
		filtered.Summary.Add(fr)
	}
	return filtered
}

// Run discovers the files under paths and lints them.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	discovered, err := e.Discover(paths)
	if err != nil {
		return nil, err
	}
	return e.LintFiles(ctx, discovered.Files)
}

// LintFiles lints files in parallel, bounded by the configured worker count.
// The first file that fails cancels the remaining work. Results are sorted
// by path regardless of completion order.
func (e *Engine) LintFiles(ctx context.Context, files []string) (*Result, error) {
	start := time.Now()
	e.logger.Info("starting lint", "files", len(files), "workers", e.workers)

	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr, err := e.LintFile(path)
			if err != nil {
				return err
			}
			results[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("lint failed", "error", err)
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	res := &Result{Files: results}
	for _, fr := range results {
		res.Summary.Add(fr)
	}
	res.Duration = time.Since(start)

	e.logger.Info("lint completed",
		"files", res.Summary.FilesScanned,
		"notebooks", res.Summary.Notebooks,
		"issues", res.Summary.TotalIssues,
		"duration", res.Duration)

	return res, nil
}

// LintFile lints a single file.
func (e *Engine) LintFile(path string) (FileResult, error) {
	report, err := e.analyzer.ReportFile(path)
	if err != nil {
		return FileResult{}, err
	}
	isNotebook := report.MatchedBy(notebook.CheckerName)
	diags := report.Diagnostics
	if diags == nil {
		diags = []lint.Diagnostic{}
	}

	e.logger.Debug("linted file",
		"path", path,
		"notebook", isNotebook,
		"diagnostics", len(diags))

	return FileResult{Path: path, Notebook: isNotebook, Diagnostics: diags}, nil
}
