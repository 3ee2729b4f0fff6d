package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// PathWatcher watches an explicit, replaceable set of root paths.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type PathWatcher interface {
	// Start begins delivering events. It returns an error if the OS watch
	// layer fails to initialize.
	Start(ctx context.Context) error

	// Replace swaps the active watch set atomically from the caller's
	// perspective: new roots are registered before old ones are removed, so
	// there is no window with zero watched paths. Roots that do not exist
	// are skipped with a warning.
	Replace(roots []string) error

	// Current returns a snapshot of the active roots for diagnostics.
	Current() []string

	// Events returns an iterator of file system events. Events for paths
	// outside the active set are filtered at OS registration, not here.
	Events() iter.Seq[WatchEvent]

	// Stop stops the watcher and releases all resources.
	Stop() error
}
