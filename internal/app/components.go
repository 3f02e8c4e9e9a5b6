package app

import "go.trai.ch/pim/internal/core/ports"

// Components bundles the resolved application dependencies for the CLI entry
// point.
type Components struct {
	App    *App
	Logger ports.Logger
}
