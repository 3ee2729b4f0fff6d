package ports

// WatchReporter receives the supervisor's status diagnostics. Each method is
// called exactly once per corresponding state transition, in transition
// order, never interleaved across two restarts.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type WatchReporter interface {
	// WatchingPaths reports the active watch roots after a (re)registration.
	WatchingPaths(paths []string)

	// ProcessStarted is emitted when a run enters Running.
	ProcessStarted()

	// ProcessFinished is emitted when a run completes successfully.
	ProcessFinished()

	// ProcessFailed is emitted when a run exits with an error. The watch
	// loop continues.
	ProcessFailed(err error)

	// Restarting is emitted when a change batch triggers a restart. Never
	// emitted for the very first run.
	Restarting(paths []string)
}
