package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fpl-advisor/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Filtered routes such as /healthz carry no parent span, so they never get
// handler spans either.
var apiTracer = tracing.New("fpl-advisor/internal/interfaces/httpapi", isHandlerSpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
