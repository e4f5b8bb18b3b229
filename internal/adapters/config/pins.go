package config

import (
	_ "embed"
	"os"

	"github.com/uibind/uibind/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// embeddedPins is the pin table shipped inside the binary. An override file
// can replace it for development against unreleased upstream revisions.
//
//go:embed pins.yaml
var embeddedPins []byte

// pinsFile represents the structure of the pins.yaml table.
type pinsFile struct {
	Default  string                       `yaml:"default"`
	Releases map[string]map[string]pinDTO `yaml:"releases"`
}

// pinDTO represents a single pinned revision in the table.
type pinDTO struct {
	Repo     string `yaml:"repo"`
	Revision string `yaml:"revision"`
}

// LoadPins returns the pin table row for a release, from the embedded table
// or from the override file at path when non-empty. An empty release selects
// the table's default row. Every pin is validated before any I/O happens
// against it.
func (l *Loader) LoadPins(release, path string) (domain.PinSet, error) {
	data := embeddedPins
	if path != "" {
		var err error
		// #nosec G304 -- path is provided by the user
		data, err = os.ReadFile(path)
		if err != nil {
			return domain.PinSet{}, zerr.With(zerr.Wrap(err, domain.ErrPinsReadFailed.Error()), "path", path)
		}
	}

	var file pinsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.PinSet{}, zerr.Wrap(err, domain.ErrPinsParseFailed.Error())
	}

	if release == "" {
		release = file.Default
	}

	rows, ok := file.Releases[release]
	if !ok {
		return domain.PinSet{}, zerr.With(domain.ErrReleaseNotPinned, "release", release)
	}

	set := domain.PinSet{
		Release: release,
		Pins:    make(map[string]domain.Pin, len(rows)),
	}
	for name, dto := range rows {
		set.Pins[name] = domain.Pin{
			Name:     name,
			Repo:     dto.Repo,
			Revision: dto.Revision,
		}
	}

	if err := set.Validate(); err != nil {
		return domain.PinSet{}, err
	}

	return set, nil
}
