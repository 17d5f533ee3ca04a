package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the flowlens tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("flowlens")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartJobSpan starts a span covering one analysis job from
	// submission to its terminal state.
	StartJobSpan(ctx context.Context, sessionID, handleID string) (context.Context, trace.Span)

	// StartPollSpan starts a span for a single status observation.
	// The poll span should be a child of the job span.
	StartPollSpan(ctx context.Context, jobID string, attempt int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartJobSpan starts a span for an analysis job.
func (m *otelSpanManager) StartJobSpan(ctx context.Context, sessionID, handleID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowlens.analysis",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("handle.id", handleID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartPollSpan starts a span for one status observation.
func (m *otelSpanManager) StartPollSpan(ctx context.Context, jobID string, attempt int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowlens.poll",
		trace.WithAttributes(
			attribute.String("job.id", jobID),
			attribute.Int("poll.attempt", attempt),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
