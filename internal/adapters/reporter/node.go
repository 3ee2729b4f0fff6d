package reporter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rove/internal/core/ports"
)

// NodeID is the unique identifier for the watch reporter Graft node.
const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.WatchReporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WatchReporter, error) {
			return New(nil), nil
		},
	})
}
