// Package watch re-runs an action whenever a single file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// ErrWatcherClosed is returned when fsnotify closes its channels underneath Run.
var ErrWatcherClosed = errors.New("file watcher closed")

// Handler is called with the watched path after each settled change.
// A returned error is logged; watching continues.
type Handler func(ctx context.Context, path string) error

// Watcher observes one file. The parent directory is watched so that
// editors which save by rename are still seen.
type Watcher struct {
	handler    Handler
	path       string
	debounce   time.Duration
	runOnStart bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithRunOnStart makes Run call the handler once before waiting for changes.
func WithRunOnStart() Option {
	return func(w *Watcher) {
		w.runOnStart = true
	}
}

// New creates a Watcher for path.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch handler is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:     filepath.Clean(abs),
		handler:  handler,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is canceled. The handler runs on this goroutine, so
// at most one call is active at a time; changes seen meanwhile trigger one
// more call afterwards.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, cleanup, err := setupFileWatcher(filepath.Dir(w.path))
	if err != nil {
		return err
	}
	defer cleanup()

	if w.runOnStart {
		w.fire(ctx)
	}

	return w.runWatchLoop(ctx, fsw)
}

func (w *Watcher) runWatchLoop(ctx context.Context, fsw *fsnotify.Watcher) error {
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(event) {
				continue
			}
			common.LogDebug("Watched file changed", common.Fields{
				"path": w.path,
				"op":   event.Op.String(),
			})
			settle = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			common.LogError(err, "File watcher error", common.Fields{"path": w.path})

		case <-settle:
			settle = nil
			w.fire(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.handler(ctx, w.path); err != nil {
		common.LogError(err, "Watch handler failed", common.Fields{"path": w.path})
	}
}

// setupFileWatcher creates a watcher on dir and returns its cleanup func.
func setupFileWatcher(dir string) (*fsnotify.Watcher, func(), error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		cleanupWatcher(fsw)
		return nil, nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return fsw, func() { cleanupWatcher(fsw) }, nil
}

func cleanupWatcher(fsw *fsnotify.Watcher) {
	if err := fsw.Close(); err != nil {
		common.LogError(err, "Failed to close file watcher", nil)
	}
}
