package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	eventChannelBuffer = 16
	debounceWindow     = 250 * time.Millisecond
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify. It watches the parent
// directories of the requested files because editors replace files on save,
// which drops inode-level watches.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	watched   map[string]bool
	events    chan ports.WatchEvent
	logger    ports.Logger

	// mu guards closed: the debouncer fires from its own goroutine and must
	// not emit into a closed channel during shutdown.
	mu     sync.Mutex
	closed bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		watched:   make(map[string]bool),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		logger:    logger,
	}
	w.debouncer = NewDebouncer(debounceWindow, w.emit)
	return w, nil
}

// Start begins watching the given files until the context is canceled.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve watch path"), "path", path)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced change events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) emit(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for _, path := range paths {
		select {
		case w.events <- ports.WatchEvent{Path: path}:
		default:
			// Consumer is behind; the next event carries the same signal.
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error: " + err.Error())
		}
	}
}

// relevant filters directory-level noise down to the watched files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.watched[abs]
}
