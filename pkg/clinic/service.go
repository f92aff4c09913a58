package clinic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/logging"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// Caller sends one operation fragment to the backend. *soap.Invoker
// implements it.
type Caller interface {
	Call(ctx context.Context, group soap.EndpointGroup, operation, fragment string) (*soap.Reply, error)
}

// Client groups the entity services over a single Caller.
type Client struct {
	caller  Caller
	catalog Catalog
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCatalog replaces the default operation catalog.
func WithCatalog(c Catalog) Option {
	return func(cl *Client) {
		if c != nil {
			cl.catalog = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client that sends calls through caller.
func NewClient(caller Caller, opts ...Option) *Client {
	c := &Client{
		caller:  caller,
		catalog: DefaultCatalog(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog in use.
func (c *Client) Catalog() Catalog {
	return c.catalog
}

// Doctors returns the doctor service.
func (c *Client) Doctors() *DoctorService {
	return &DoctorService{c: c}
}

// Patients returns the patient service.
func (c *Client) Patients() *PatientService {
	return &PatientService{c: c}
}

// Appointments returns the appointment service.
func (c *Client) Appointments() *AppointmentService {
	return &AppointmentService{c: c}
}

// exchange resolves key, sends the fragment built by fill and classifies the
// reply. The document is only returned with OutcomeOK.
func (c *Client) exchange(ctx context.Context, key OperationKey, fill func(*soap.Fragment)) (Operation, *soap.Document, Outcome, error) {
	op, err := c.catalog.Lookup(key)
	if err != nil {
		return op, nil, OutcomeServiceFailure, err
	}

	f := soap.NewFragment(op.SOAPAction)
	if fill != nil {
		fill(f)
	}

	reply, err := c.caller.Call(ctx, op.Group, op.SOAPAction, f.String())
	if err != nil {
		return op, nil, OutcomeTransportError, err
	}
	if !reply.Succeeded || reply.Fault != nil {
		serr := &ServiceError{
			Operation:  key,
			SOAPAction: op.SOAPAction,
			StatusCode: reply.StatusCode,
			Fault:      reply.Fault,
		}
		c.logger.Debug("service failure", "operation", key.String(), "error", serr)
		return op, nil, OutcomeServiceFailure, serr
	}
	return op, reply.Document, OutcomeOK, nil
}

func one[T any](ctx context.Context, c *Client, key OperationKey, codec Codec[T], fill func(*soap.Fragment)) Result[T] {
	op, doc, outcome, err := c.exchange(ctx, key, fill)
	if outcome != OutcomeOK {
		return Result[T]{Outcome: outcome, Err: err}
	}
	v, ok := codec.DecodeOne(doc, op.ResultTag)
	if !ok {
		c.logger.Debug("result not found", "operation", key.String(), "tag", op.ResultTag, "parseError", doc.Err())
		return Result[T]{Outcome: OutcomeNotFound, Err: fmt.Errorf("%s: %w", key, ErrNotFound)}
	}
	return Result[T]{Outcome: OutcomeOK, Value: v}
}

func many[T any](ctx context.Context, c *Client, key OperationKey, codec Codec[T], fill func(*soap.Fragment)) Result[[]T] {
	op, doc, outcome, err := c.exchange(ctx, key, fill)
	if outcome != OutcomeOK {
		return Result[[]T]{Outcome: outcome, Value: []T{}, Err: err}
	}
	return Result[[]T]{Outcome: OutcomeOK, Value: codec.DecodeMany(doc, op.ResultTag)}
}

func write(ctx context.Context, c *Client, key OperationKey, fill func(*soap.Fragment)) Result[struct{}] {
	_, _, outcome, err := c.exchange(ctx, key, fill)
	return Result[struct{}]{Outcome: outcome, Err: err}
}

// Raw sends a fragment for an arbitrary SOAP action, bypassing the
// catalog. It returns the reply even when the backend reported a failure.
func (c *Client) Raw(ctx context.Context, group soap.EndpointGroup, action string, fill func(*soap.Fragment)) (*soap.Reply, error) {
	f := soap.NewFragment(action)
	if fill != nil {
		fill(f)
	}
	return c.caller.Call(ctx, group, action, f.String())
}

// IsTransportError reports whether err is a transport or cancellation
// failure from the soap package.
func IsTransportError(err error) bool {
	var te *soap.TransportError
	var ce *soap.CancelledError
	return errors.As(err, &te) || errors.As(err, &ce)
}
