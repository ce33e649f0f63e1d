package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DiscoveryResult contains the files selected for linting.
type DiscoveryResult struct {
	Files    []string
	Skipped  int // Files and directories excluded during walks
	Duration time.Duration
}

// Discover expands paths into the sorted, de-duplicated list of files to lint.
// Files named explicitly are always included. Directories are walked and
// their files filtered by the include and exclude patterns.
func (e *Engine) Discover(paths []string) (*DiscoveryResult, error) {
	start := time.Now()
	result := &DiscoveryResult{}
	seen := make(map[string]struct{})

	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		result.Files = append(result.Files, clean)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && e.excluded(d.Name()) {
				result.Skipped++
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if e.included(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(result.Files)
	result.Duration = time.Since(start)

	e.logger.Debug("discovery complete",
		"files", len(result.Files),
		"skipped", result.Skipped,
		"duration", result.Duration)

	return result, nil
}

func (e *Engine) included(name string) bool {
	return matchAny(e.include, name)
}

func (e *Engine) excluded(name string) bool {
	return matchAny(e.exclude, name)
}

// MatchesFile reports whether a file base name would be picked up by a
// directory walk.
func (e *Engine) MatchesFile(name string) bool {
	return e.included(name) && !e.excluded(name)
}

// SkipsDir reports whether a walk skips the directory base name.
func (e *Engine) SkipsDir(name string) bool {
	return e.excluded(name)
}

// matchAny reports whether name matches any pattern. Malformed patterns
// never match.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
