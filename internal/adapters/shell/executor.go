// Package shell provides an os/exec based executor for the supervised
// child process.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

// teardownGrace is how long a cancelled child gets to exit after the
// interrupt signal before it is killed.
const teardownGrace = 5 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the command and waits for it to complete. Context
// cancellation interrupts the child cooperatively first, then kills it after
// a grace period. A cancelled run returns the context's error, not a command
// failure.
func (e *Executor) Execute(ctx context.Context, spec *domain.RunSpec, stdout, stderr io.Writer) error {
	if len(spec.Command) == 0 {
		return nil
	}

	name := spec.Command[0]
	args := spec.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		// Give the child a chance to flush and exit before the kill.
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = teardownGrace

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.Wrap(domain.ErrRunFailed, err.Error())
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	return nil
}
