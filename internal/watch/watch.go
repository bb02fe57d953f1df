// Package watch re-runs a task whenever namespace files or the schema change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/pkg/constants"
	"github.com/agentstation/nsmerge/pkg/errors"
	"github.com/agentstation/nsmerge/pkg/logging"
)

// Task is run once at start and again after every settled batch of changes.
// run counts from 1. A returned error is logged and watching continues.
type Task func(ctx context.Context, run int) error

// Watcher watches an input root and a schema file.
type Watcher struct {
	root     string
	schema   string
	debounce time.Duration
	logger   *zerolog.Logger
	onError  func(run int, err error)

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]fsnotify.Op
	timer   *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the tree must be quiet before the task runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithErrorHandler is called with every failed run.
func WithErrorHandler(fn func(run int, err error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// New creates a watcher for root and schemaFile.
func New(root, schemaFile string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapIO("watch", root, err)
	}

	w := &Watcher{
		root:     filepath.Clean(root),
		schema:   filepath.Clean(schemaFile),
		debounce: constants.WatchDebounce,
		logger:   logging.Default(),
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run runs task, then re-runs it after changes until ctx is done.
// It returns nil when ctx is canceled.
func (w *Watcher) Run(ctx context.Context, task Task) error {
	defer w.Close()

	if err := w.addWatches(); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	run := 0
	exec := func() {
		run++
		runCtx := logging.WithRun(ctx, run)
		if err := task(runCtx, run); err != nil {
			if errors.IsCanceled(err) && ctx.Err() != nil {
				return
			}
			w.logger.Error().Err(err).Int("run", run).Msg("Run failed")
			if w.onError != nil {
				w.onError(run, err)
			}
		}
	}

	exec()
	w.logger.Info().
		Str("input_dir", w.root).
		Str("schema", w.schema).
		Dur("debounce", w.debounce).
		Msg("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event, trigger)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-trigger:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			w.logger.Info().Strs("changed", changed).Msg("Change detected, re-running")
			// Input root may have appeared since the last run.
			if err := w.addWatches(); err != nil {
				w.logger.Warn().Err(err).Msg("Failed to refresh watches")
			}
			exec()
		}
	}
}

// addWatches watches the root, every namespace directory and the schema's
// directory. A missing root is watched through its parent.
func (w *Watcher) addWatches() error {
	dirs := []string{filepath.Dir(w.schema)}
	if fi, err := os.Stat(w.root); err == nil && fi.IsDir() {
		dirs = append(dirs, w.root)
		entries, err := os.ReadDir(w.root)
		if err != nil {
			return errors.WrapIO("list", w.root, err)
		}
		for _, e := range entries {
			path := filepath.Join(w.root, e.Name())
			if fi, err := os.Stat(path); err == nil && fi.IsDir() {
				dirs = append(dirs, path)
			}
		}
	} else {
		dirs = append(dirs, filepath.Dir(w.root))
	}

	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return errors.WrapIO("watch", dir, err)
		}
		w.logger.Debug().Str("path", dir).Msg("Watching directory")
	}
	return nil
}

// relevant reports whether a change to path can affect the merged output.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if path == w.schema || path == w.root {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) handle(event fsnotify.Event, trigger chan<- struct{}) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.relevant(event.Name) {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] |= event.Op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	w.mu.Unlock()

	w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(changed)
	return changed
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
