// Package app implements the application layer for rove.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rove/internal/adapters/cache"
	"go.trai.ch/rove/internal/adapters/nodemodules"
	"go.trai.ch/rove/internal/adapters/registry"
	"go.trai.ch/rove/internal/adapters/telemetry"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/rove/internal/engine/resolver"
	"go.trai.ch/rove/internal/engine/supervisor"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	watcher      ports.PathWatcher
	lockfile     ports.LockfileStore
	graphBuilder ports.GraphBuilder
	reporter     ports.WatchReporter
	tracer       ports.Tracer

	verboseSpans bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	watch ports.PathWatcher,
	lockfile ports.LockfileStore,
	graphBuilder ports.GraphBuilder,
	reporter ports.WatchReporter,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		watcher:      watch,
		lockfile:     lockfile,
		graphBuilder: graphBuilder,
		reporter:     reporter,
		tracer:       tracer,
	}
}

// WithVerboseSpans surfaces span lifecycles in the log output.
func (a *App) WithVerboseSpans() *App {
	a.verboseSpans = true
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Watch          bool
	NoNpm          bool
	CachedOnly     bool
	Reload         bool
	LockPath       string
	LockWrite      bool
	NodeModulesDir bool
}

// Run executes the entry module, optionally under the file watcher.
func (a *App) Run(ctx context.Context, entry string, opts RunOptions) error {
	cfg, err := a.loadConfig(entry, opts.LockPath)
	if err != nil {
		return err
	}

	a.setupTelemetry()
	deps := a.composeResolution(cfg)

	prepare := a.preparer(cfg, deps, opts)

	if !opts.Watch {
		_, spec, err := prepare(ctx)
		if err != nil {
			return err
		}
		return a.executor.Execute(ctx, spec, os.Stdout, os.Stderr)
	}

	sup := supervisor.New(supervisor.Options{
		Watcher:        a.watcher,
		Executor:       a.executor,
		Reporter:       a.reporter,
		Logger:         a.logger,
		Tracer:         a.tracer,
		Prepare:        prepare,
		DebounceWindow: cfg.DebounceWindow,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	})
	return sup.Run(ctx)
}

// CacheOptions configuration for the Cache method.
type CacheOptions struct {
	CachedOnly bool
	Reload     bool
	LockPath   string
	LockWrite  bool
}

// Cache resolves and downloads the given specifiers, or the entry module's
// dependency set when none are given, without executing anything.
func (a *App) Cache(ctx context.Context, specifiers []string, opts CacheOptions) error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.LockPath != "" {
		cfg.LockfilePath = opts.LockPath
	}
	if len(specifiers) == 0 && cfg.Entry == "" {
		return domain.ErrNoEntrySpecified
	}

	a.setupTelemetry()
	deps := a.composeResolution(cfg)

	if len(specifiers) == 0 {
		graph, err := a.graphBuilder.Build(ctx, []string{cfg.Entry})
		if err != nil {
			return err
		}
		specifiers = graph.NpmSpecifiers()
	}

	_, err = deps.resolver.Resolve(ctx, specifiers, resolver.Options{
		Mode:         resolveMode(opts.CachedOnly, opts.Reload),
		LockfilePath: cfg.LockfilePath,
		Recreate:     opts.LockWrite,
	})
	return err
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Packages bool
	Lock     bool
}

// Clean removes the package cache and, when requested, the lockfile.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return err
	}

	if opts.Packages {
		a.logger.Info("removing package cache", "dir", cfg.CacheDir)
		store := cache.NewStore(cfg.CacheDir, a.logger)
		if err := store.Clean(); err != nil {
			return err
		}
		a.logger.Info("removed package cache")
	}

	if opts.Lock {
		a.logger.Info("removing lockfile", "path", cfg.LockfilePath)
		if err := os.Remove(cfg.LockfilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, "failed to remove lockfile")
		}
	}
	return nil
}

// resolutionDeps are the config-dependent components composed per command.
type resolutionDeps struct {
	registry ports.RegistryClient
	store    ports.PackageStore
	resolver *resolver.Resolver
	linker   *nodemodules.Linker
}

func (a *App) composeResolution(cfg *domain.Config) *resolutionDeps {
	client := registry.NewClient(cfg.RegistryURL, a.logger)
	store := cache.NewStore(cfg.CacheDir, a.logger)
	return &resolutionDeps{
		registry: client,
		store:    store,
		resolver: resolver.New(client, store, a.lockfile, a.logger, a.tracer, domain.DefaultDownloadParallelism),
		linker:   nodemodules.NewLinker(store, a.logger),
	}
}

// preparer builds the supervisor's prepare step: rebuild the module graph,
// reconcile npm dependencies, and derive the watch roots and run spec.
func (a *App) preparer(cfg *domain.Config, deps *resolutionDeps, opts RunOptions) supervisor.Prepare {
	return func(ctx context.Context) ([]string, *domain.RunSpec, error) {
		graph, err := a.graphBuilder.Build(ctx, []string{cfg.Entry})
		if err != nil {
			return nil, nil, err
		}

		if specs := graph.NpmSpecifiers(); len(specs) > 0 && !opts.NoNpm {
			snapshot, err := deps.resolver.Resolve(ctx, specs, resolver.Options{
				Mode:         resolveMode(opts.CachedOnly, opts.Reload),
				LockfilePath: cfg.LockfilePath,
				Recreate:     opts.LockWrite,
			})
			if err != nil {
				return nil, nil, err
			}
			if opts.NodeModulesDir {
				if err := deps.linker.Materialize(cfg.Root, snapshot); err != nil {
					return nil, nil, err
				}
			}
		}

		roots := graph.LocalPaths()
		roots = append(roots, cfg.WatchPaths...)
		if cfg.ConfigPath != "" {
			roots = append(roots, cfg.ConfigPath)
		}

		spec := &domain.RunSpec{
			Command: append(append([]string(nil), cfg.Command...), cfg.Entry),
			Dir:     cfg.Root,
		}
		return roots, spec, nil
	}
}

// loadConfig loads the project configuration and applies CLI overrides.
func (a *App) loadConfig(entry, lockPath string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if entry != "" {
		cfg.Entry = entry
	}
	if cfg.Entry == "" {
		return nil, domain.ErrNoEntrySpecified
	}
	if lockPath != "" {
		cfg.LockfilePath = lockPath
	}
	return cfg, nil
}

// setupTelemetry installs the tracer provider. The log bridge is only wired
// when span logging was requested; without it the default no-op provider
// stays in place and spans cost nothing.
func (a *App) setupTelemetry() {
	if !a.verboseSpans {
		return
	}
	var processor sdktrace.SpanProcessor = telemetry.NewLogBridge(a.logger)
	telemetry.SetupProvider(processor)
}

func resolveMode(cachedOnly, reload bool) domain.ResolveMode {
	switch {
	case cachedOnly:
		return domain.ModeCachedOnly
	case reload:
		return domain.ModeReload
	default:
		return domain.ModeDefault
	}
}
