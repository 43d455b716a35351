package pdfbook

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits after the last change
// before triggering a rebuild.
const defaultDebounce = 300 * time.Millisecond

// Watcher watches a project tree and triggers strictly serialized rebuilds.
// One rebuild runs to completion (or failure) before the next starts;
// changes arriving during a rebuild coalesce into a single follow-up run.
type Watcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	rebuild  func(ctx context.Context) error
}

// NewWatcher creates a Watcher over root. rebuild is invoked after each
// debounced batch of changes. A nil logger falls back to slog.Default().
func NewWatcher(root string, rebuild func(ctx context.Context) error, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: creating watcher: %v", ErrBuild, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:     root,
		debounce: defaultDebounce,
		watcher:  fsw,
		logger:   logger,
		rebuild:  rebuild,
	}, nil
}

// Run watches until ctx is cancelled. Rebuild failures are logged, not
// fatal: the watcher keeps running so the next save can fix the problem.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("%w: watching %s: %v", ErrBuild, w.root, err)
	}
	defer w.watcher.Close()

	w.logger.Info("watching for changes", "root", w.root)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	dirty := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			// New directories must be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			dirty = true
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-timer.C:
			if !dirty {
				continue
			}
			dirty = false
			w.logger.Info("rebuilding")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			} else {
				w.logger.Info("rebuild complete")
			}
		}
	}
}

// ignored reports whether path sits in the build output or a dot directory.
// Watching the build dir would make every rebuild trigger the next one.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part == buildDirName || strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// addRecursive registers dir and every non-ignored subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return fs.SkipDir
		}
		return w.watcher.Add(path)
	})
}
