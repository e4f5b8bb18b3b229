// Package config provides the configuration and pin table loader for uibind.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// configVersion is the uibind.yaml schema version this loader understands.
const configVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves settings from defaults and the configuration file. When path
// is empty the file is discovered by walking up from cwd; a missing file
// leaves the defaults in place. A non-empty path names the file explicitly
// and must exist.
func (l *Loader) Load(cwd, path string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	if path == "" {
		found, ok := l.findConfiguration(cwd)
		if !ok {
			return settings, nil
		}
		path = found
	}

	var file ConfigFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	if file.Version != "" && file.Version != configVersion {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, expected %q", file.Version, path, configVersion))
	}

	if err := settings.Apply(file.Overrides()); err != nil {
		return nil, zerr.With(err, "config", path)
	}

	return settings, nil
}

// findConfiguration walks from cwd towards the filesystem root and returns
// the first uibind.yaml it encounters.
func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", false
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}
