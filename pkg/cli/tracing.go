package cli

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanLogger is a span processor that logs every finished span.
type spanLogger struct {
	logger *slog.Logger
}

func (p spanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	p.logger.Info("span",
		"name", s.Name(),
		"traceId", s.SpanContext().TraceID().String(),
		"spanId", s.SpanContext().SpanID().String(),
		"duration", s.EndTime().Sub(s.StartTime()),
		"status", s.Status().Code.String())
}

func (p spanLogger) Shutdown(context.Context) error { return nil }

func (p spanLogger) ForceFlush(context.Context) error { return nil }

// tracerProvider returns a provider whose spans are written to logger.
// Outgoing requests carry W3C trace context headers.
func tracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanLogger{logger: logger}))
}
