package soap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 << 20 // 10MB

// DefaultTimeout is the HTTP timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Transport performs one SOAP HTTP exchange.
type Transport interface {
	Send(ctx context.Context, url, body, action string) (*Response, error)
}

// TransportError reports that the HTTP exchange could not complete
// (DNS failure, refused connection, timeout, unreadable body).
type TransportError struct {
	URL    string
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("soap %s %s: %v", e.Action, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CancelledError reports that the caller's context was cancelled before the
// exchange completed.
type CancelledError struct {
	URL    string
	Action string
	Err    error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("soap %s %s: cancelled: %v", e.Action, e.URL, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// HTTPTransport sends envelopes with net/http.
type HTTPTransport struct {
	client *http.Client
	shared bool
}

// own replaces a caller-supplied client with a private copy before it is
// changed.
func (t *HTTPTransport) own() {
	if !t.shared {
		return
	}
	c := *t.client
	t.client = &c
	t.shared = false
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.own()
		t.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying client. Later options adjust a
// copy, so the caller's client is never modified.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.client = client
		t.shared = true
	}
}

// WithTracing wraps the client's round tripper so each request carries
// trace context and produces an HTTP client span.
func WithTracing() TransportOption {
	return func(t *HTTPTransport) {
		t.own()
		base := t.client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		t.client.Transport = otelhttp.NewTransport(base)
	}
}

// NewHTTPTransport creates a transport with a DefaultTimeout client.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send posts body to url with the SOAPAction header set to action.
func (t *HTTPTransport) Send(ctx context.Context, url, body, action string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, &TransportError{URL: url, Action: action, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("SOAPAction", action)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classify(ctx, url, action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classify(ctx, url, action, fmt.Errorf("failed to read response: %w", err))
	}

	return &Response{
		Body:       string(data),
		StatusCode: resp.StatusCode,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}

// classify maps an exchange failure to CancelledError when the caller
// cancelled, and to TransportError otherwise (deadlines included).
func classify(ctx context.Context, url, action string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &CancelledError{URL: url, Action: action, Err: err}
	}
	return &TransportError{URL: url, Action: action, Err: err}
}
