package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the crossfig tracer instance, backed by the global OTel
// tracer provider.
var tracer = otel.Tracer("crossfig")

// SpanManager handles trace span lifecycle for a resolution run.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when
// disabled.
type SpanManager interface {
	// StartRunSpan starts a span covering one whole resolution run.
	StartRunSpan(ctx context.Context, manifest, runID string) (context.Context, trace.Span)

	// StartDeclSpan starts a span for resolving one declaration
	// (an alias or a switch), as a child of the run span.
	StartDeclSpan(ctx context.Context, construct, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager backed by the global OTel tracer
// provider. Configure the provider before calling:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartRunSpan(ctx context.Context, manifest, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "crossfig.resolve",
		trace.WithAttributes(
			attribute.String("manifest", manifest),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartDeclSpan(ctx context.Context, construct, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "crossfig."+construct+"."+name,
		trace.WithAttributes(
			attribute.String("decl.construct", construct),
			attribute.String("decl.name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

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

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
