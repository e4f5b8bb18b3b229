package ports

import (
	"context"
	"io"

	"github.com/uibind/uibind/internal/core/domain"
)

// Invoker drives the native build for a strategy.
//
//go:generate mockgen -source=invoker.go -destination=mocks/mock_invoker.go -package=mocks
type Invoker interface {
	// Invoke compiles the library according to the plan and returns the
	// artifact location. Required tools are checked before any command
	// runs, and a clean exit without a produced library is still an
	// error. Build output is streamed to out (which may be nil).
	Invoke(ctx context.Context, plan domain.BuildPlan, out io.Writer) (domain.Artifact, error)
}
