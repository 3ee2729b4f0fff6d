// Package watcher implements file system watching for the restart supervisor.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathWatcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher implements ports.PathWatcher using fsnotify.
//
// Roots may be files or directories. File roots are observed through their
// parent directory so that editor rename-replace saves are not lost; events
// are filtered back to the active root set before delivery, which keeps the
// debouncer's assumption that every event it sees is relevant.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent

	mu        sync.RWMutex
	roots     map[string]bool
	osWatches map[string]int // fsnotify target -> refcount across roots
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize file watcher")
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		roots:     make(map[string]bool),
		osWatches: make(map[string]int),
	}, nil
}

// Start begins processing events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Current returns a snapshot of the active roots.
func (w *Watcher) Current() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	roots := make([]string, 0, len(w.roots))
	for root := range w.roots {
		roots = append(roots, root)
	}
	return roots
}

// Replace swaps the active watch set. New OS watches are registered before
// old ones are removed, tolerating brief duplicate delivery, so there is no
// window where zero paths are watched.
func (w *Watcher) Replace(roots []string) error {
	desired := make(map[string]int)
	newRoots := make(map[string]bool, len(roots))

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			// A root may have been deleted since the graph was computed.
			// The rest of the set is still watched.
			w.logger.Warn("skipping missing watch root: " + abs)
			continue
		}
		newRoots[abs] = true
		if info.IsDir() {
			for dir := range w.walkDirectories(abs) {
				desired[dir]++
			}
		} else {
			desired[filepath.Dir(abs)]++
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Register new targets first.
	for target := range desired {
		if w.osWatches[target] == 0 {
			if err := w.fsWatcher.Add(target); err != nil {
				w.logger.Warn("failed to watch " + target + ": " + err.Error())
				continue
			}
		}
	}

	// Then drop targets no longer needed.
	for target := range w.osWatches {
		if desired[target] == 0 {
			_ = w.fsWatcher.Remove(target)
		}
	}

	w.roots = newRoots
	w.osWatches = desired
	return nil
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// walkDirectories walks the directory tree and yields all directories.
func (w *Watcher) walkDirectories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Keep walking even if a directory is unreadable.
				return nil //nolint:nilerr // skip problematic directories
			}
			if d.IsDir() {
				if shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// relevant reports whether path belongs to the active root set: an exact
// file root, or anything under a directory root.
func (w *Watcher) relevant(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.roots[path] {
		return true
	}
	for root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil || !w.relevant(watchEvent.Path) {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// A directory created under a watched root must itself be watched.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !shouldSkipDirectories[info.Name()] {
					w.mu.Lock()
					for dir := range w.walkDirectories(event.Name) {
						if w.osWatches[dir] == 0 {
							_ = w.fsWatcher.Add(dir)
						}
						w.osWatches[dir]++
					}
					w.mu.Unlock()
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file system watch error: " + err.Error())
		}
	}
}

func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}
	case event.Op&fsnotify.Create == fsnotify.Create:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}
	default:
		return nil
	}
}
