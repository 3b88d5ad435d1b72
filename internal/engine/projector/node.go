package projector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lineage/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lineage/internal/core/ports"
)

// NodeID is the unique identifier for the projector Graft node.
const NodeID graft.ID = "engine.projector"

func init() {
	graft.Register(graft.Node[*Projector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Projector, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(tracer), nil
		},
	})
}
