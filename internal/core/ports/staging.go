package ports

import "github.com/uibind/uibind/internal/core/domain"

// StagingStore persists the staging manifest between runs.
//
//go:generate mockgen -source=staging.go -destination=mocks/mock_staging.go -package=mocks
type StagingStore interface {
	// Load reads the manifest for a staging layout.
	// Returns nil, nil when no manifest exists yet.
	Load(layout domain.StagingLayout) (*domain.StagingManifest, error)

	// Save writes the manifest for a staging layout, creating the
	// staging directory when needed.
	Save(layout domain.StagingLayout, manifest *domain.StagingManifest) error
}
