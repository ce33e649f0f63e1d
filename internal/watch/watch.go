// Package watch reports batches of changed files under a set of paths.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more events before
// reporting a batch.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher configuration.
type Config struct {
	// Debounce is the quiet period before a batch is reported.
	Debounce time.Duration
	// Match selects file base names of interest inside watched directories.
	// Nil matches every file.
	Match func(name string) bool
	// SkipDir reports directory base names that should not be watched.
	// Nil skips hidden directories and node_modules.
	SkipDir func(name string) bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Handler receives the sorted set of files changed since the last batch.
type Handler func(ctx context.Context, changed []string)

// Watcher wraps an fsnotify watcher with recursive directory registration
// and debounced batching.
type Watcher struct {
	fsw    *fsnotify.Watcher
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	dirs  map[string]bool     // watched directory -> recursive
	files map[string]struct{} // explicitly watched files
}

// New creates a watcher. Call Close when done.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Match == nil {
		cfg.Match = func(string) bool { return true }
	}
	if cfg.SkipDir == nil {
		cfg.SkipDir = defaultSkipDir
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		fsw:    fsw,
		cfg:    cfg,
		logger: logger,
		dirs:   make(map[string]bool),
		files:  make(map[string]struct{}),
	}, nil
}

func defaultSkipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && name[0] == '.')
}

// Add starts watching path. Directories are watched recursively; a file is
// watched through its parent directory.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		parent := filepath.Dir(path)
		w.mu.Lock()
		w.files[path] = struct{}{}
		_, watched := w.dirs[parent]
		if !watched {
			w.dirs[parent] = false
		}
		w.mu.Unlock()
		if watched {
			return nil
		}
		return w.fsw.Add(parent)
	}

	return w.addTree(path)
}

// addTree recursively adds a directory to the watcher.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.cfg.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		w.dirs[path] = true
		w.mu.Unlock()
		return w.fsw.Add(path)
	})
}

// relevant reports whether an event on name should be part of a batch.
func (w *Watcher) relevant(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; ok {
		return true
	}
	return w.dirs[filepath.Dir(name)] && w.cfg.Match(filepath.Base(name))
}

// Run processes events until ctx is done, calling h once per debounced batch.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, pending)
			if len(pending) > 0 {
				timer.Reset(w.cfg.Debounce)
			}

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)

			w.logger.Debug("change detected", "files", len(changed))
			h(ctx, changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, pending map[string]struct{}) {
	name := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		w.mu.Lock()
		recursive := w.dirs[filepath.Dir(name)]
		w.mu.Unlock()
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if recursive && !w.cfg.SkipDir(info.Name()) {
				if err := w.addTree(name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", name, "error", err)
				}
			}
			return
		}
	}

	// Only write/create events matter for linting
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.relevant(name) {
		return
	}
	pending[name] = struct{}{}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
