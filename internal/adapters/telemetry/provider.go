// Package telemetry adapts OpenTelemetry tracing to pipeline progress
// reporting. Stage spans carry attributes and duration for exporters,
// while a span processor bridge mirrors their lifecycle to the active
// renderer and a per-span batcher streams stage output to it.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/uibind/uibind/internal/core/ports"
)

// OTelTracer implements ports.Tracer on top of the global OpenTelemetry
// tracer provider.
type OTelTracer struct {
	tracer trace.Tracer

	mu       sync.RWMutex
	renderer ports.Renderer
}

// NewOTelTracer returns a tracer registered under the given
// instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

// WithRenderer attaches the renderer that receives plan announcements
// and batched stage output. Span start and completion reach the
// renderer through the Bridge span processor instead.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start creates a new stage span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)
	for key, value := range cfg.Attributes {
		span.SetAttributes(otelAttr(key, value))
	}

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	var batcher *BatchProcessor
	if renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		batcher = NewBatchProcessor(0, 0, func(data []byte) {
			renderer.OnStageLog(spanID, data)
		})
	}

	return ctx, &OTelSpan{span: span, batcher: batcher, started: time.Now()}
}

// EmitPlan records the planned stage names and the target platform on
// the current span and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, stages []string, target string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("stages", stages),
			attribute.String("target", target),
		))
	}

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	if renderer != nil {
		renderer.OnPlanEmit(stages, target)
	}
}

// OTelSpan implements ports.Span by delegating to an OpenTelemetry span.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
	started time.Time
}

// End flushes any batched output, stamps the stage duration, and
// completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.SetAttributes(attribute.Int64("duration_ms", time.Since(s.started).Milliseconds()))
	s.span.End()
}

// RecordError records err and marks the span status as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(otelAttr(key, value))
}

// Write streams stage output. With a renderer attached the bytes go
// through the batcher; otherwise each chunk becomes a span event.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}

// Batcher exposes the span's output batcher for tests.
func (s *OTelSpan) Batcher() *BatchProcessor {
	return s.batcher
}

// otelAttr maps a dynamic attribute value onto its typed constructor.
func otelAttr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
