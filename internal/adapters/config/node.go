package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lineage/internal/adapters/logger"
	"go.trai.ch/lineage/internal/core/ports"
)

// NodeID is the unique identifier for the schema loader Graft node.
const NodeID graft.ID = "adapter.schema_loader"

func init() {
	graft.Register(graft.Node[ports.SchemaLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SchemaLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
