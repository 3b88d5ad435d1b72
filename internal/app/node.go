package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lineage/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/emitter"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/internal/engine/projector"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			projector.NodeID,
			emitter.NodeID,
			cas.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.SchemaLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	proj, err := graft.Dep[*projector.Projector](ctx)
	if err != nil {
		return nil, err
	}
	emitters, err := graft.Dep[ports.EmitterRegistry](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, tracer, proj, emitters, store, w), nil
}
