package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/uibind/uibind/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to mirror stage span
// lifecycle events to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge wires span events to renderer.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart forwards a span start to the renderer as a stage start.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.renderer.OnStageStart(sc.SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd forwards span completion, mapping an error status back to a
// stage error for the renderer.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "stage failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnStageComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush is a no-op; events forward synchronously.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown is a no-op; the bridge holds no buffered state.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
