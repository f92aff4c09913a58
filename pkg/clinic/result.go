package clinic

import (
	"errors"
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// Outcome classifies how an operation ended.
type Outcome int

const (
	// OutcomeOK means the call succeeded and Value holds the result.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means the call succeeded but the response held no
	// record under the expected tag.
	OutcomeNotFound
	// OutcomeServiceFailure means the backend answered with a non-2xx status
	// or a SOAP Fault.
	OutcomeServiceFailure
	// OutcomeTransportError means no response was received.
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeServiceFailure:
		return "service_failure"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ErrNotFound is returned by Result.Unwrap for OutcomeNotFound.
var ErrNotFound = errors.New("not found")

// ServiceError describes a call the backend rejected.
type ServiceError struct {
	Operation  OperationKey
	SOAPAction string
	StatusCode int
	// Fault is the SOAP Fault in the response, when there was one.
	Fault *soap.Fault
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s (%s) failed: HTTP %d", e.Operation, e.SOAPAction, e.StatusCode)
	if e.Fault != nil {
		msg += ": " + e.Fault.String()
	}
	return msg
}

// Result is the outcome of a caller-facing operation.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	// Err is nil for OutcomeOK.
	Err error
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Outcome == OutcomeOK
}

// Unwrap returns the value, or an error that wraps ErrNotFound, a
// *ServiceError or the transport error.
func (r Result[T]) Unwrap() (T, error) {
	if r.Outcome == OutcomeOK {
		return r.Value, nil
	}
	if r.Err != nil {
		return r.Value, r.Err
	}
	// Results built by hand may leave Err unset.
	if r.Outcome == OutcomeNotFound {
		return r.Value, ErrNotFound
	}
	return r.Value, fmt.Errorf("operation failed: %s", r.Outcome)
}

// IsNotFound reports whether err came from a NotFound result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
