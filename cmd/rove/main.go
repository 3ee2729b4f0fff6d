// Package main is the entry point for the rove runner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/rove/cmd/rove/commands"
	"go.trai.ch/rove/internal/app"
	"go.trai.ch/rove/internal/core/domain"
	_ "go.trai.ch/rove/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.ExitError
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitCode(err)
	}
	return domain.ExitSuccess
}

// exitCode maps lockfile integrity failures to their dedicated exit code so
// scripting callers can distinguish them from ordinary failures.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrCorruptLockfile) || errors.Is(err, domain.ErrIntegrityMismatch) {
		return domain.ExitLockfileError
	}
	return domain.ExitError
}
