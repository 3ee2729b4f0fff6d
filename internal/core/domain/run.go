package domain

// RunState is the lifecycle state of a supervised run.
type RunState uint8

const (
	// StateIdle means no run is live.
	StateIdle RunState = iota

	// StateStarting means a run has been scheduled but has not begun executing.
	StateStarting

	// StateRunning means the subcommand is executing.
	StateRunning

	// StateFinishing means the run is completing naturally.
	StateFinishing

	// StateCancelling means cancellation was requested and the run is
	// unwinding cooperatively.
	StateCancelling
)

// String returns the state name for diagnostics.
func (s RunState) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateFinishing:
		return "Finishing"
	case StateCancelling:
		return "Cancelling"
	default:
		return "Idle"
	}
}

// RunSpec describes one invocation of the supervised subcommand.
type RunSpec struct {
	// Command is the argv to execute. Never empty.
	Command []string

	// Dir is the working directory.
	Dir string

	// Env holds extra environment variables in "KEY=VALUE" form, appended to
	// the parent environment.
	Env []string
}

// DebouncedBatch is one coalesced set of changed paths, constructed only
// after the quiescence window elapses. Never empty.
type DebouncedBatch struct {
	// Paths are the absolute paths touched since the batch opened.
	Paths []string
}
