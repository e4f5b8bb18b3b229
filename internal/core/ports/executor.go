// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/uibind/uibind/internal/core/domain"
)

// Executor runs external build tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and blocks until it exits. Interleaved
	// stdout/stderr is streamed to out (which may be nil) and returned in
	// the result. A nonzero exit is reported through the result, not the
	// error; the error is reserved for commands that could not be
	// started or were interrupted.
	Run(ctx context.Context, cmd domain.Command, out io.Writer) (domain.ExecResult, error)

	// LookPath resolves an executable on PATH. A missing tool is
	// reported as domain.ErrToolNotFound carrying the tool name.
	LookPath(name string) (string, error)
}
