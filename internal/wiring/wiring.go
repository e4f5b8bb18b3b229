// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/uibind/uibind/internal/adapters/cgolink"
	_ "github.com/uibind/uibind/internal/adapters/config"
	_ "github.com/uibind/uibind/internal/adapters/fs"
	_ "github.com/uibind/uibind/internal/adapters/git"
	_ "github.com/uibind/uibind/internal/adapters/logger"
	_ "github.com/uibind/uibind/internal/adapters/native"
	_ "github.com/uibind/uibind/internal/adapters/shell"
	_ "github.com/uibind/uibind/internal/adapters/staging"
	_ "github.com/uibind/uibind/internal/adapters/watcher"
	// Register generator and app nodes.
	_ "github.com/uibind/uibind/internal/app"
	_ "github.com/uibind/uibind/internal/bindgen"
)
