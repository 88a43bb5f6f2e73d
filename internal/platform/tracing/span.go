package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer starts child spans only. Calls without a sampled-or-recording parent in
// the context, with an empty name, or rejected by the name filter get a no-op
// span so helpers never create standalone root spans.
type Tracer struct {
	tracer trace.Tracer
	allow  func(name string) bool
}

// New returns a Tracer backed by the global provider. A nil allow accepts every name.
func New(instrumentation string, allow func(name string) bool) Tracer {
	return Tracer{tracer: otel.Tracer(instrumentation), allow: allow}
}

func (t Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.allow != nil && !t.allow(name) {
		return ctx, noopSpan
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer("")
	}
	return t.tracer.Start(ctx, name, opts...)
}

// HasPrefix accepts span names starting with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}
