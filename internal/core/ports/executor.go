// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/rove/internal/core/domain"
)

// Executor defines the interface for running the supervised subcommand.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the subcommand once, blocking until it exits.
	//
	// Cancelling ctx requests cooperative shutdown: the process is signalled
	// and given time to run its teardown hooks before being terminated.
	Execute(ctx context.Context, spec *domain.RunSpec, stdout, stderr io.Writer) error
}
