package ports

import "github.com/uibind/uibind/internal/core/domain"

// ConfigLoader resolves the settings and pin table for a run.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves settings from defaults and the configuration file.
	// When path is empty the file is discovered at or above cwd; a
	// missing file is not an error, defaults apply. A non-empty path
	// names the file explicitly and must exist.
	Load(cwd, path string) (*domain.Settings, error)

	// LoadPins returns the pin table row for a release, from the
	// embedded table or from the override file at path when non-empty.
	LoadPins(release, path string) (domain.PinSet, error)
}
