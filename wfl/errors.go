package wfl

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrNotSupported      = errors.New("operation not supported")
	ErrNotSerializable   = errors.New("callable is not serializable")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrBindingRejected   = errors.New("binding rejected")
	ErrStaleReference    = errors.New("stale host reference")
	ErrExecution         = errors.New("execution error")
	ErrOffMap            = errors.New("location is off the map")
	errStepQuotaExceeded = errors.New("step quota exceeded")
)

// AttributeError reports a failed Get or Set against a callable.
type AttributeError struct {
	Type CallableType
	Key  string
	Err  error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Key, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

func notFound(t CallableType, key string) error {
	return &AttributeError{Type: t, Key: key, Err: ErrAttributeNotFound}
}

func notSupported(t CallableType, key string) error {
	return &AttributeError{Type: t, Key: key, Err: ErrNotSupported}
}

// ActionError reports a failed action execution along with the callable that
// was active when it failed.
type ActionError struct {
	Action   CallableType
	Callable Callable
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Status classifies a failure for safe_call diagnostics.
type Status int

const (
	StatusOK                Status = 0
	StatusAttributeNotFound Status = -1
	StatusTypeMismatch      Status = -2
	StatusNotSupported      Status = -3
	StatusBindingRejected   Status = -4
	StatusStaleReference    Status = -5
	StatusExecutionError    Status = -6
	StatusCanceled          Status = -7
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAttributeNotFound:
		return "attribute_not_found"
	case StatusTypeMismatch:
		return "type_mismatch"
	case StatusNotSupported:
		return "not_supported"
	case StatusBindingRejected:
		return "binding_rejected"
	case StatusStaleReference:
		return "stale_reference"
	case StatusCanceled:
		return "canceled"
	default:
		return "execution_error"
	}
}

// StatusOf maps an error onto the closed set of failure classes. Binding
// rejection is checked before not-supported since it usually wraps it.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrBindingRejected):
		return StatusBindingRejected
	case errors.Is(err, ErrAttributeNotFound):
		return StatusAttributeNotFound
	case errors.Is(err, ErrTypeMismatch):
		return StatusTypeMismatch
	case errors.Is(err, ErrNotSupported), errors.Is(err, ErrNotSerializable):
		return StatusNotSupported
	case errors.Is(err, ErrStaleReference):
		return StatusStaleReference
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusExecutionError
	}
}

// failingCallable returns the callable recorded on the deepest ActionError.
func failingCallable(err error) Callable {
	var found Callable
	for err != nil {
		var actionErr *ActionError
		if !errors.As(err, &actionErr) {
			break
		}
		if actionErr.Callable != nil {
			found = actionErr.Callable
		}
		err = actionErr.Err
	}
	return found
}
