package definitions

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies probe errors so callers can decide between
// bounded retry, per-case failure, and aborting the run.
type ErrorCategory int

const (
	CategoryNone       ErrorCategory = iota
	CategoryTransient                // empty or garbled readback, retryable
	CategoryConnection               // device unreachable, shell error
	CategoryAssertion                // value mismatch, no observed change
	CategoryLookup                   // unknown coordinate or option name
	CategoryConfig                   // invalid configuration
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryTransient:
		return "transient"
	case CategoryConnection:
		return "connection"
	case CategoryAssertion:
		return "assertion"
	case CategoryLookup:
		return "lookup"
	case CategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ProbeError is a structured error with category and machine-readable code.
type ProbeError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match any error carrying the same code, so the
// predefined values below work as sentinels after WithMessage/WithCause.
func (e *ProbeError) Is(target error) bool {
	var pe *ProbeError
	if !errors.As(target, &pe) {
		return false
	}
	return e.Code == pe.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *ProbeError) WithCause(cause error) *ProbeError {
	return &ProbeError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ProbeError) WithMessage(msg string) *ProbeError {
	return &ProbeError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	ErrEmptyReadback = &ProbeError{
		Category: CategoryTransient,
		Code:     "empty_readback",
		Message:  "setting readback was empty or null",
	}
	ErrNonNumericReadback = &ProbeError{
		Category: CategoryTransient,
		Code:     "non_numeric_readback",
		Message:  "setting readback was not numeric",
	}
	ErrScreenNotOn = &ProbeError{
		Category: CategoryTransient,
		Code:     "screen_not_on",
		Message:  "device did not report screen ON",
	}
	ErrUnknownCoordinate = &ProbeError{
		Category: CategoryLookup,
		Code:     "unknown_coordinate",
		Message:  "coordinate name not found in configuration",
	}
	ErrTimeoutMismatch = &ProbeError{
		Category: CategoryAssertion,
		Code:     "timeout_mismatch",
		Message:  "screen timeout does not match expected value",
	}
	ErrNoObservedChange = &ProbeError{
		Category: CategoryAssertion,
		Code:     "no_observed_change",
		Message:  "brightness did not change",
	}
	ErrInvalidConfig = &ProbeError{
		Category: CategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// IsTransient reports whether err is a retryable readback failure.
func IsTransient(err error) bool {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.Category == CategoryTransient
	}
	return false
}

// IsFatal reports whether err must abort the enclosing step sequence.
func IsFatal(err error) bool {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.Category == CategoryLookup || pe.Category == CategoryConfig || pe.Category == CategoryConnection
	}
	// Plain errors from the device channel are channel faults.
	return err != nil
}
