// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rove/internal/adapters/config"
	_ "go.trai.ch/rove/internal/adapters/lockfile"
	_ "go.trai.ch/rove/internal/adapters/logger"
	_ "go.trai.ch/rove/internal/adapters/reporter"
	_ "go.trai.ch/rove/internal/adapters/shell"
	_ "go.trai.ch/rove/internal/adapters/telemetry"
	_ "go.trai.ch/rove/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/rove/internal/app"
	_ "go.trai.ch/rove/internal/modgraph"
)
