// Package watch notifies when the database file changes on disk, so views
// can reload after another process writes to the same store.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/logger"
)

// DefaultDebounce collapses bursts of writes (data file plus journal) into
// a single notification.
const DefaultDebounce = 250 * time.Millisecond

// Ensure FileWatcher implements the interface.
var _ driven.ChangeWatcher = (*FileWatcher)(nil)

// FileWatcher watches one database file and the SQLite side files next to it
// (-journal, -wal, -shm).
type FileWatcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *FileWatcher) {
		if log != nil {
			w.log = log
		}
	}
}

// NewFileWatcher creates a watcher for the database at path.
func NewFileWatcher(path string, opts ...Option) *FileWatcher {
	w := &FileWatcher{
		path:     path,
		debounce: DefaultDebounce,
		log:      logger.Named("watch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching and returns a channel that receives a value after
// each burst of changes. The channel is closed when ctx is done.
// Notifications are coalesced; a slow reader sees at most one pending.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// SQLite replaces and creates side files, so watch the directory.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)
	go w.loop(ctx, fsw, changes)

	w.log.Debug("watching database", zap.String("path", w.path))
	return changes, nil
}

func (w *FileWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer fsw.Close()

	// Timers never deliver stale values after Stop or Reset (Go 1.23+).
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether event touches the database or its side files.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(w.path)
	name := filepath.Base(event.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
