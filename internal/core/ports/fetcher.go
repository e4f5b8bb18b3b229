package ports

import (
	"context"
	"io"

	"github.com/uibind/uibind/internal/core/domain"
)

// Fetcher materializes pinned dependency sources.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Ensure makes dir an exact checkout of the pinned revision,
	// cloning when absent and fetching when stale. It is idempotent:
	// ensuring the same pin twice leaves an identical tree. Progress
	// output is streamed to out (which may be nil).
	Ensure(ctx context.Context, pin domain.Pin, dir string, out io.Writer) error
}
