package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for pipeline progress output.
// It decouples stage telemetry from presentation, so the same event stream
// drives either the interactive TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// Asynchronous renderers may launch background goroutines here.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once with the planned stage names and the
	// target platform before execution begins.
	OnPlanEmit(stages []string, target string)

	// OnStageStart is called when a stage begins.
	OnStageStart(spanID, name string, startTime time.Time)

	// OnStageLog is called with raw output chunks of the running stage.
	OnStageLog(spanID string, data []byte)

	// OnStageComplete is called when a stage finishes.
	// err is nil on success.
	OnStageComplete(spanID string, endTime time.Time, err error)
}
