package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/adapters/watcher"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/rove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestWatcher(t *testing.T) (*watcher.Watcher, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w, logger
}

func TestWatcher_ReplaceTracksCurrentRoots(t *testing.T) {
	w, _ := newTestWatcher(t)

	dirA := t.TempDir()
	dirB := t.TempDir()

	require.NoError(t, w.Replace([]string{dirA, dirB}))
	assert.ElementsMatch(t, []string{dirA, dirB}, w.Current())

	require.NoError(t, w.Replace([]string{dirB}))
	assert.Equal(t, []string{dirB}, w.Current())
}

func TestWatcher_ReplaceSkipsMissingRoots(t *testing.T) {
	w, logger := newTestWatcher(t)

	dir := t.TempDir()
	missing := filepath.Join(dir, "gone")
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	require.NoError(t, w.Replace([]string{dir, missing}))
	assert.Equal(t, []string{dir}, w.Current())
}

func TestWatcher_FileRootWatchedThroughParent(t *testing.T) {
	w, _ := newTestWatcher(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {}\n"), 0o644))

	require.NoError(t, w.Replace([]string{file}))
	assert.Equal(t, []string{file}, w.Current())
}

func TestWatcher_DeliversWriteEvents(t *testing.T) {
	w, _ := newTestWatcher(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {}\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Replace([]string{dir}))

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			received <- event
			return
		}
	}()

	require.NoError(t, os.WriteFile(file, []byte("export const x = 1\n"), 0o644))

	select {
	case event := <-received:
		assert.Equal(t, file, event.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestWatcher_IgnoresEventsOutsideRoots(t *testing.T) {
	w, _ := newTestWatcher(t)

	parent := t.TempDir()
	watched := filepath.Join(parent, "src")
	unwatched := filepath.Join(parent, "other")
	require.NoError(t, os.MkdirAll(watched, 0o750))
	require.NoError(t, os.MkdirAll(unwatched, 0o750))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Replace([]string{watched}))

	received := make(chan ports.WatchEvent, 8)
	go func() {
		for event := range w.Events() {
			received <- event
		}
	}()

	require.NoError(t, os.WriteFile(filepath.Join(unwatched, "noise.ts"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(watched, "main.ts"), []byte("x"), 0o644))

	select {
	case event := <-received:
		assert.Equal(t, filepath.Join(watched, "main.ts"), event.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
