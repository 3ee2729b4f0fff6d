package supervisor_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/engine/supervisor"
)

func TestDebouncer_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := supervisor.NewDebouncer(200*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/main.ts")

		time.Sleep(250 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		require.Len(t, receivedPaths, 1)
		assert.Equal(t, "/project/src/main.ts", receivedPaths[0])
	})
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := supervisor.NewDebouncer(200*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		// An editor save typically produces several events in quick
		// succession, including repeats for the same file.
		d.Add("/project/src/a.ts")
		d.Add("/project/src/b.ts")
		d.Add("/project/src/a.ts")

		time.Sleep(250 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		require.Len(t, receivedPaths, 2)
		assert.Contains(t, receivedPaths, "/project/src/a.ts")
		assert.Contains(t, receivedPaths, "/project/src/b.ts")
	})
}

func TestDebouncer_QuiescenceResetsOnActivity(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int

		d := supervisor.NewDebouncer(200*time.Millisecond, func([]string) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		d.Add("/project/src/a.ts")
		time.Sleep(150 * time.Millisecond)

		// Activity inside the window restarts it.
		d.Add("/project/src/b.ts")
		time.Sleep(150 * time.Millisecond)

		synctest.Wait()
		mu.Lock()
		count := callCount
		mu.Unlock()
		assert.Equal(t, 0, count)

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		count = callCount
		mu.Unlock()
		require.Equal(t, 1, count)
	})
}

func TestDebouncer_FlushEmitsImmediately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := supervisor.NewDebouncer(200*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/a.ts")
		d.Flush()

		require.Equal(t, 1, callCount)
		require.Len(t, receivedPaths, 1)
	})
}

func TestDebouncer_FlushWithoutPending(t *testing.T) {
	var callCount int

	d := supervisor.NewDebouncer(200*time.Millisecond, func([]string) {
		callCount++
	})

	d.Flush()

	assert.Equal(t, 0, callCount)
}
