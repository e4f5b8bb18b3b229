// Package staging persists the staging manifest, the per-directory record of
// which pinned revisions have been fetched and verified.
package staging

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.StagingStore using a flat JSON file at the layout's
// manifest path. Concurrent pipelines over one staging directory are
// unsupported, so there is no locking.
type Store struct {
	Logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{Logger: logger}
}

// Load reads the manifest for a staging layout. A staging directory that was
// never fetched into has no manifest, which is not an error.
func (s *Store) Load(layout domain.StagingLayout) (*domain.StagingManifest, error) {
	path := layout.ManifestPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	if len(data) == 0 {
		return nil, nil
	}

	manifest := &domain.StagingManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return manifest, nil
}

// Save writes the manifest, creating the staging directory when needed.
func (s *Store) Save(layout domain.StagingLayout, manifest *domain.StagingManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := os.MkdirAll(layout.Root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingCreateFailed.Error()), "path", layout.Root)
	}

	path := layout.ManifestPath()
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}
