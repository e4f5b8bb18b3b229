package telemetry

import (
	"context"

	"github.com/uibind/uibind/internal/core/ports"
)

// NoOpTracer discards all telemetry. Tests and headless pipeline runs use
// it in place of the OTel-backed tracer.
type NoOpTracer struct{}

// NewNoOpTracer returns a tracer that records nothing.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns the context unchanged and a span that swallows everything.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// EmitPlan is a no-op.
func (t *NoOpTracer) EmitPlan(_ context.Context, _ []string, _ string) {}

// NoOpSpan ignores every call.
type NoOpSpan struct{}

// End is a no-op.
func (s *NoOpSpan) End() {}

// RecordError is a no-op.
func (s *NoOpSpan) RecordError(_ error) {}

// SetAttribute is a no-op.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// Write reports p as written without keeping it.
func (s *NoOpSpan) Write(p []byte) (n int, err error) {
	return len(p), nil
}
