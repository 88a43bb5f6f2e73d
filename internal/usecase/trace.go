package usecase

import (
	"context"

	"github.com/riskibarqy/pitch-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = tracing.New("pitch-league/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}
