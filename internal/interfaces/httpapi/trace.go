package httpapi

import (
	"context"

	"github.com/riskibarqy/pitch-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Only handler entry points get their own span; helpers and middleware run
// inside the otelhttp request span.
var apiTracer = tracing.New("pitch-league/internal/interfaces/httpapi", tracing.HasPrefix("httpapi.Handler."))

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
