package reporter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rove/internal/adapters/reporter"
)

func newTestReporter(t *testing.T) (*reporter.Reporter, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return reporter.New(buf), buf
}

func TestReporter_WatchingPaths(t *testing.T) {
	r, buf := newTestReporter(t)
	r.WatchingPaths([]string{"/app/src/util.ts", "/app/main.ts"})

	assert.Equal(t, "Watcher Watching paths: [/app/main.ts, /app/src/util.ts]\n", buf.String())
}

func TestReporter_ProcessLifecycle(t *testing.T) {
	r, buf := newTestReporter(t)
	r.ProcessStarted()
	r.ProcessFinished()

	assert.Equal(t,
		"Watcher Process started.\n"+
			"Watcher Process finished. Restarting on file change...\n",
		buf.String())
}

func TestReporter_ProcessFailed(t *testing.T) {
	r, buf := newTestReporter(t)
	r.ProcessFailed(errors.New("exit status 1"))

	assert.Equal(t,
		"Watcher Process failed. Restarting on file change...\n"+
			"error: exit status 1\n",
		buf.String())
}

func TestReporter_ProcessFailedNilError(t *testing.T) {
	r, buf := newTestReporter(t)
	r.ProcessFailed(nil)

	assert.Equal(t, "Watcher Process failed. Restarting on file change...\n", buf.String())
}

func TestReporter_Restarting(t *testing.T) {
	r, buf := newTestReporter(t)
	r.Restarting([]string{"/app/b.ts", "/app/a.ts"})

	assert.Equal(t, "Watcher Restarting! File change detected: [/app/a.ts, /app/b.ts]\n", buf.String())
}
