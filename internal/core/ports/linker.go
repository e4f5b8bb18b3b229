package ports

import (
	"context"

	"github.com/uibind/uibind/internal/core/domain"
)

// LinkWriter emits the cgo linkage surface of the generated package.
//
//go:generate mockgen -source=linker.go -destination=mocks/mock_linker.go -package=mocks
type LinkWriter interface {
	// Write emits the directives-only linkage file for the target and
	// returns the written path.
	Write(spec domain.LinkSpec, opts BindingOptions) (string, error)

	// WriteManifest compiles the common-controls application manifest
	// into a .syso object in the output package. It returns the written
	// path, or "" when the target does not take a manifest.
	WriteManifest(ctx context.Context, opts BindingOptions) (string, error)
}
