package ports

import "context"

// ModuleGraph is the resolved module graph for a set of entry specifiers.
type ModuleGraph interface {
	// LocalPaths returns the set of local files participating in the graph.
	// Consumed by the watcher to derive watch roots.
	LocalPaths() []string

	// NpmSpecifiers returns the ordered npm specifiers found in the graph.
	// Consumed by the lockfile resolver.
	NpmSpecifiers() []string
}

// GraphBuilder produces the current module graph. The graph must be
// recomputed after every run completion, since dynamic imports discovered at
// runtime may alter the true dependency set.
//
//go:generate mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type GraphBuilder interface {
	Build(ctx context.Context, entries []string) (ModuleGraph, error)
}
