// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pim/internal/adapters/lock"
	_ "go.trai.ch/pim/internal/adapters/logger"
	_ "go.trai.ch/pim/internal/adapters/manifest"
	_ "go.trai.ch/pim/internal/adapters/policy"
	_ "go.trai.ch/pim/internal/adapters/registry"
	_ "go.trai.ch/pim/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/pim/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/pim/internal/app"
	_ "go.trai.ch/pim/internal/engine/analyzer"
)
