// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bust/internal/adapters/config"
	_ "go.trai.ch/bust/internal/adapters/fs"
	_ "go.trai.ch/bust/internal/adapters/logger"
	_ "go.trai.ch/bust/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/bust/internal/app"
)
