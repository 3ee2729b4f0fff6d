package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rove/internal/adapters/config"
	"go.trai.ch/rove/internal/adapters/lockfile"
	"go.trai.ch/rove/internal/adapters/logger"
	"go.trai.ch/rove/internal/adapters/reporter"
	"go.trai.ch/rove/internal/adapters/shell"
	"go.trai.ch/rove/internal/adapters/telemetry"
	"go.trai.ch/rove/internal/adapters/watcher"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/rove/internal/modgraph"
)

// Components bundles the fully wired application for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			watcher.NodeID,
			lockfile.NodeID,
			modgraph.NodeID,
			reporter.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.PathWatcher](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}
			graphBuilder, err := graft.Dep[ports.GraphBuilder](ctx)
			if err != nil {
				return nil, err
			}
			report, err := graft.Dep[ports.WatchReporter](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, executor, log, watch, locks, graphBuilder, report, tracer),
				Logger: log,
			}, nil
		},
	})
}
