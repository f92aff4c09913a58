package soap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/logging"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/util"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"

// Reply is the outcome of a call that reached the backend.
type Reply struct {
	Document *Document
	// Succeeded mirrors the HTTP status only (2xx).
	Succeeded  bool
	StatusCode int
	// Fault is set when the body carries a SOAP Fault, whatever the status.
	Fault *Fault
}

// Invoker sends operation fragments to the backend's endpoint groups.
// It is safe for concurrent use; each call owns its request and document.
type Invoker struct {
	baseURL   string
	transport Transport
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTransport replaces the default HTTPTransport.
func WithTransport(t Transport) Option {
	return func(i *Invoker) {
		i.transport = t
	}
}

// WithLogger sets the logger used for per-call diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invoker) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMetrics records call counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(i *Invoker) {
		i.metrics = m
	}
}

// WithTracerProvider sets the provider spans are created from. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(i *Invoker) {
		if tp != nil {
			i.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewInvoker creates an invoker for the backend rooted at baseURL.
func NewInvoker(baseURL string, opts ...Option) *Invoker {
	i := &Invoker{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: NewHTTPTransport(),
		logger:    logging.Nop(),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// BaseURL returns the backend root URL.
func (i *Invoker) BaseURL() string {
	return i.baseURL
}

// URL returns the endpoint URL of group.
func (i *Invoker) URL(group EndpointGroup) string {
	return i.baseURL + "/" + strings.Trim(string(group), "/")
}

// Invoke wraps fragment in an envelope, posts it to group with SOAPAction
// set to operation and parses the response. succeeded is true iff the HTTP
// status was 2xx. Transport failures are returned unchanged.
func (i *Invoker) Invoke(ctx context.Context, group EndpointGroup, operation, fragment string) (*Document, bool, error) {
	reply, err := i.Call(ctx, group, operation, fragment)
	if err != nil {
		return nil, false, err
	}
	return reply.Document, reply.Succeeded, nil
}

// Call is Invoke returning the full Reply.
func (i *Invoker) Call(ctx context.Context, group EndpointGroup, operation, fragment string) (*Reply, error) {
	url := i.URL(group)
	id := uuid.NewString()

	ctx, span := i.tracer.Start(ctx, "soap "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("soap.group", string(group)),
			attribute.String("soap.action", operation),
			attribute.String("soap.call_id", id),
		),
	)
	defer span.End()

	envelope := Build(fragment)
	if i.logger.Enabled(ctx, slog.LevelDebug) {
		i.logger.Debug("soap request",
			"id", id, "url", url, "operation", operation,
			"body", util.TruncateBody(util.RedactElements(envelope, "password"), 0))
	}

	start := time.Now()
	resp, err := i.transport.Send(ctx, url, envelope, operation)
	elapsed := time.Since(start)
	if err != nil {
		outcome := OutcomeTransportError
		var cancelled *CancelledError
		if errors.As(err, &cancelled) {
			outcome = OutcomeCancelled
		}
		i.metrics.observe(group, operation, outcome, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		i.logger.Warn("soap call failed",
			"id", id, "group", group, "operation", operation,
			"duration", elapsed, "error", err)
		return nil, err
	}

	doc := Parse(resp.Body)
	reply := &Reply{
		Document:   doc,
		Succeeded:  resp.OK,
		StatusCode: resp.StatusCode,
		Fault:      doc.Fault(),
	}

	outcome := OutcomeOK
	switch {
	case !resp.OK:
		outcome = OutcomeHTTPError
	case reply.Fault != nil:
		outcome = OutcomeFault
	}
	i.metrics.observe(group, operation, outcome, elapsed)

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if outcome != OutcomeOK {
		span.SetStatus(codes.Error, outcome)
	}

	i.logger.Debug("soap call",
		"id", id, "group", group, "operation", operation,
		"status", resp.StatusCode, "outcome", outcome, "duration", elapsed)
	if doc.Err() != nil {
		i.logger.Debug("soap response not parseable",
			"id", id, "operation", operation, "error", doc.Err(),
			"body", util.TruncateBody(resp.Body, 512))
	}

	return reply, nil
}
