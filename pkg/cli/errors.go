package cli

import (
	"errors"
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
)

// Exit codes.
const (
	ExitFailure   = 1
	ExitNotFound  = 3
	ExitService   = 4
	ExitTransport = 5
)

// ErrNoRecord is reported when a lookup matched nothing.
var ErrNoRecord = errors.New("no matching record")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// resultError converts a failed result into an ExitError. It returns nil
// for OutcomeOK.
func resultError[T any](what string, res clinic.Result[T]) error {
	_, err := res.Unwrap()
	switch res.Outcome {
	case clinic.OutcomeOK:
		return nil
	case clinic.OutcomeNotFound:
		return &ExitError{Code: ExitNotFound, Err: fmt.Errorf("%s: %w", what, ErrNoRecord)}
	case clinic.OutcomeServiceFailure:
		return &ExitError{Code: ExitService, Err: fmt.Errorf("%s: %w", what, err)}
	case clinic.OutcomeTransportError:
		return &ExitError{Code: ExitTransport, Err: fmt.Errorf("%s: backend unreachable: %w", what, err)}
	default:
		return &ExitError{Code: ExitFailure, Err: err}
	}
}
