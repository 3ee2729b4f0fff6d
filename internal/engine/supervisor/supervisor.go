// Package supervisor implements the restart scheduler that keeps exactly one
// supervised run alive and restarts it on debounced file changes.
package supervisor

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prepare recomputes the state one run depends on: the watch roots derived
// from the current module graph and the command to execute. It is called
// before the first run and again before every restart, since a completed run
// may have changed the dependency set on disk.
type Prepare func(ctx context.Context) (roots []string, spec *domain.RunSpec, err error)

// runHandle is the supervisor's grip on one live run.
type runHandle struct {
	cancel context.CancelFunc
	done   chan error
}

// Supervisor owns the watch loop. All state transitions happen on the
// goroutine that called Run, so the single-live-run invariant needs no
// locking beyond the state mutex used by State().
type Supervisor struct {
	watch    ports.PathWatcher
	executor ports.Executor
	reporter ports.WatchReporter
	logger   ports.Logger
	tracer   ports.Tracer
	prepare  Prepare
	window   time.Duration
	stdout   io.Writer
	stderr   io.Writer

	mu     sync.Mutex
	state  domain.RunState
	handle *runHandle

	pendingMu sync.Mutex
	pending   map[string]struct{}
	notify    chan struct{}
}

// Options configures a Supervisor.
type Options struct {
	Watcher        ports.PathWatcher
	Executor       ports.Executor
	Reporter       ports.WatchReporter
	Logger         ports.Logger
	Tracer         ports.Tracer
	Prepare        Prepare
	DebounceWindow time.Duration
	Stdout         io.Writer
	Stderr         io.Writer
}

// New creates a supervisor.
func New(opts Options) *Supervisor {
	window := opts.DebounceWindow
	if window <= 0 {
		window = domain.DefaultDebounceWindow
	}
	return &Supervisor{
		watch:    opts.Watcher,
		executor: opts.Executor,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		prepare:  opts.Prepare,
		window:   window,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		state:    domain.StateIdle,
		pending:  make(map[string]struct{}),
		notify:   make(chan struct{}, 1),
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() domain.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Supervisor) setState(state domain.RunState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Run drives the watch loop until ctx is cancelled. It returns nil on a
// clean shutdown and an error when the loop cannot make progress, such as
// when no watchable paths exist.
func (s *Supervisor) Run(ctx context.Context) error {
	debouncer := NewDebouncer(s.window, s.enqueueBatch)

	if err := s.watch.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.watch.Stop(); err != nil {
			s.logger.Warn("failed to stop watcher", "error", err)
		}
	}()

	// Feed raw events into the debouncer off the control goroutine.
	go func() {
		for event := range s.watch.Events() {
			debouncer.Add(event.Path)
		}
	}()

	var lastRoots []string
	firstRun := true

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		roots, spec, err := s.prepare(ctx)
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			return domain.ErrNoPathsToWatch
		}

		if err := s.watch.Replace(roots); err != nil {
			return zerr.Wrap(err, "failed to update watch set")
		}
		if firstRun || !slices.Equal(roots, lastRoots) {
			s.reporter.WatchingPaths(s.watch.Current())
			lastRoots = roots
		}

		restart, shutdown := s.superviseRun(ctx, spec)
		if shutdown {
			return nil
		}
		if !restart {
			// The run ended on its own. Stay idle until a change arrives.
			select {
			case <-ctx.Done():
				return nil
			case <-s.notify:
			}
			s.reporter.Restarting(s.takePending())
		}
		firstRun = false
	}
}

// superviseRun executes one run to completion or cancellation. It returns
// restart=true when a change batch interrupted the run, and shutdown=true
// when ctx ended the loop.
func (s *Supervisor) superviseRun(ctx context.Context, spec *domain.RunSpec) (restart, shutdown bool) {
	handle := s.spawn(ctx, spec)

	select {
	case err := <-handle.done:
		s.finishRun(err)
		return false, false

	case <-s.notify:
		s.setState(domain.StateCancelling)
		// The reporter line shows the batch that triggered the restart.
		// Batches arriving during teardown coalesce into the next run
		// rather than producing extra restarts.
		s.reporter.Restarting(s.takePending())
		handle.cancel()
		<-handle.done
		s.clearHandle()
		s.setState(domain.StateIdle)
		return true, false

	case <-ctx.Done():
		handle.cancel()
		<-handle.done
		s.clearHandle()
		s.setState(domain.StateIdle)
		return false, true
	}
}

// spawn starts the subcommand. Exactly one run may be live at a time; a
// second live handle is a bug in the control loop, not a recoverable
// condition.
func (s *Supervisor) spawn(ctx context.Context, spec *domain.RunSpec) *runHandle {
	s.mu.Lock()
	if s.handle != nil {
		s.mu.Unlock()
		panic("supervisor: two live run handles")
	}
	runCtx, cancel := context.WithCancel(ctx)
	handle := &runHandle{
		cancel: cancel,
		done:   make(chan error, 1),
	}
	s.handle = handle
	s.state = domain.StateStarting
	s.mu.Unlock()

	go func() {
		s.setState(domain.StateRunning)
		s.reporter.ProcessStarted()

		spanCtx, span := s.tracer.Start(runCtx, "run", ports.WithAttribute("command", spec.Command[0]))
		err := s.executor.Execute(spanCtx, spec, s.stdout, s.stderr)
		span.RecordError(err)
		span.End()

		handle.done <- err
	}()

	return handle
}

// finishRun records the outcome of a naturally completed run.
func (s *Supervisor) finishRun(err error) {
	s.setState(domain.StateFinishing)
	s.clearHandle()

	switch {
	case err == nil:
		s.reporter.ProcessFinished()
	case errors.Is(err, context.Canceled):
		// Cancellation is reported by the restart path, not here.
	default:
		s.reporter.ProcessFailed(err)
	}
	s.setState(domain.StateIdle)
}

func (s *Supervisor) clearHandle() {
	s.mu.Lock()
	s.handle = nil
	s.mu.Unlock()
}

// enqueueBatch is the debouncer callback. It merges the batch into the
// pending set and nudges the control loop. The notify channel holds at most
// one token, so bursts collapse into a single wakeup.
func (s *Supervisor) enqueueBatch(paths []string) {
	s.pendingMu.Lock()
	for _, p := range paths {
		s.pending[p] = struct{}{}
	}
	s.pendingMu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// takePending drains and returns the pending change set, sorted for stable
// diagnostics.
func (s *Supervisor) takePending() []string {
	s.pendingMu.Lock()
	paths := make([]string, 0, len(s.pending))
	for p := range s.pending {
		paths = append(paths, p)
	}
	s.pending = make(map[string]struct{})
	s.pendingMu.Unlock()

	slices.Sort(paths)
	return paths
}
