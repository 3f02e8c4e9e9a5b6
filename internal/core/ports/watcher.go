package ports

import (
	"context"
	"iter"
)

// WatchEvent signals that a watched file changed.
type WatchEvent struct {
	Path string
}

// Watcher defines the interface for watching manifest and policy files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files. Watching stops when the context
	// is canceled.
	Start(ctx context.Context, paths []string) error

	// Events returns an iterator of debounced change events.
	Events() iter.Seq[WatchEvent]

	// Stop stops the watcher and releases all resources.
	Stop() error
}
