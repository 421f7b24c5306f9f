// Package tracing starts child spans only when the caller is already inside
// a sampled request, so background jobs and health probes emit nothing.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

type Tracer struct {
	tracer trace.Tracer
	allow  func(name string) bool
}

// New returns a Tracer on the global provider. allow may be nil.
func New(scope string, allow func(name string) bool) Tracer {
	return NewWithProvider(otel.GetTracerProvider(), scope, allow)
}

func NewWithProvider(provider trace.TracerProvider, scope string, allow func(name string) bool) Tracer {
	return Tracer{tracer: provider.Tracer(scope), allow: allow}
}

// Start opens a child span of the span in ctx. Without a valid parent, or
// when allow rejects name, ctx is returned with a no-op span.
func (t Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" || t.tracer == nil {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.allow != nil && !t.allow(name) {
		return ctx, noopSpan
	}
	if len(attrs) == 0 {
		return t.tracer.Start(ctx, name)
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
