// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lineage/internal/adapters/cas"
	_ "go.trai.ch/lineage/internal/adapters/config"
	_ "go.trai.ch/lineage/internal/adapters/emitter"
	_ "go.trai.ch/lineage/internal/adapters/logger"
	_ "go.trai.ch/lineage/internal/adapters/telemetry"
	_ "go.trai.ch/lineage/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lineage/internal/app"
	_ "go.trai.ch/lineage/internal/engine/projector"
)
