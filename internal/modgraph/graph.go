// Package modgraph builds the module graph for a set of entry files by
// scanning ES module import specifiers.
package modgraph

import (
	"sort"

	"go.trai.ch/rove/internal/core/ports"
)

var _ ports.ModuleGraph = (*Graph)(nil)

// Graph is the resolved module graph for one build pass.
type Graph struct {
	localPaths    map[string]bool
	npmSpecifiers map[string]bool
}

func newGraph() *Graph {
	return &Graph{
		localPaths:    make(map[string]bool),
		npmSpecifiers: make(map[string]bool),
	}
}

// LocalPaths returns the sorted set of local files in the graph.
func (g *Graph) LocalPaths() []string {
	paths := make([]string, 0, len(g.localPaths))
	for p := range g.localPaths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// NpmSpecifiers returns the sorted set of npm specifiers in the graph.
func (g *Graph) NpmSpecifiers() []string {
	specs := make([]string, 0, len(g.npmSpecifiers))
	for s := range g.npmSpecifiers {
		specs = append(specs, s)
	}
	sort.Strings(specs)
	return specs
}
