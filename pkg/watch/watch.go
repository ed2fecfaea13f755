// Package watch reloads a hierarchy file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a [Watcher].
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithLoader replaces [hierarchy.Load].
func WithLoader(fn func(path string) (hierarchy.Document, error)) Option {
	return func(w *Watcher) { w.load = fn }
}

// Watcher watches one hierarchy file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	load     func(string) (hierarchy.Document, error)
}

// New creates a watcher for path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "resolve %s", path)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   log.Default(),
		load:     hierarchy.Load,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls onReload with every successfully parsed version of the file
// until ctx is cancelled. Parse failures are logged and the previous
// document stays in effect.
func (w *Watcher) Run(ctx context.Context, onReload func(context.Context, hierarchy.Document)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer fsw.Close()

	// The directory is watched so atomic rename-over saves are seen.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(w.path))
	}
	w.logger.Debug("watching", "path", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case <-timer.C:
			doc, err := w.load(w.path)
			if err != nil {
				w.logger.Warn("reload failed, keeping previous hierarchy", "path", w.path, "err", err)
				continue
			}
			w.logger.Info("hierarchy changed", "path", w.path, "topics", len(doc.Topics))
			onReload(ctx, doc)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
