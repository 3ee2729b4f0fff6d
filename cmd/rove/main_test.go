package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rove/internal/app"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newTestApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		mocks.NewMockExecutor(ctrl),
		logger,
		mocks.NewMockPathWatcher(ctrl),
		mocks.NewMockLockfileStore(ctrl),
		mocks.NewMockGraphBuilder(ctrl),
		mocks.NewMockWatchReporter(ctrl),
		mocks.NewMockTracer(ctrl),
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := newTestApp(ctrl, mockLoader, mockLogger)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newTestApp(ctrl, mockLoader, mockLogger)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"clean"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_LockfileErrorExitCode verifies that lockfile corruption surfaces
// through the dedicated exit code.
func TestRun_LockfileErrorExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(nil, domain.ErrCorruptLockfile)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newTestApp(ctrl, mockLoader, mockLogger)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"clean"}, new(bytes.Buffer), provider)
	assert.Equal(t, domain.ExitLockfileError, exitCode)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, domain.ExitLockfileError, exitCode(domain.ErrCorruptLockfile))
	assert.Equal(t, domain.ExitLockfileError, exitCode(domain.ErrIntegrityMismatch))
	assert.Equal(t, domain.ExitError, exitCode(errors.New("anything else")))

	// Sentinels stay reachable through the annotated chains the adapters build.
	corrupt := zerr.With(zerr.Wrap(domain.ErrCorruptLockfile, "unsupported lockfile version"), "version", "9")
	assert.Equal(t, domain.ExitLockfileError, exitCode(zerr.Wrap(corrupt, "failed reading lockfile")))

	mismatch := zerr.With(zerr.Wrap(domain.ErrIntegrityMismatch, "tarball hash does not match the lockfile"), "expected", "sha512-aaa")
	assert.Equal(t, domain.ExitLockfileError, exitCode(zerr.With(mismatch, "package", "left-pad@1.3.0")))

	generic := zerr.With(zerr.Wrap(domain.ErrRunFailed, "exit status 1"), "exit_code", 1)
	assert.Equal(t, domain.ExitError, exitCode(generic))
}
