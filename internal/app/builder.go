package app

import "github.com/uibind/uibind/internal/core/ports"

// Components contains the initialized application components.
// This struct provides controlled access to what the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(application *App, log ports.Logger) *Components {
	return &Components{
		App:    application,
		Logger: log,
	}
}
