package astrocarto

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrReferenceDataUnavailable = errors.New("reference data unavailable")
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindInvalidInput             Kind = "invalid_input"
	KindReferenceDataUnavailable Kind = "reference_data_unavailable"
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Op    string
	Kind  Kind
	Field string // offending input, for KindInvalidInput
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrReferenceDataUnavailable:
		return e.Kind == KindReferenceDataUnavailable
	}
	return false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// FieldOf returns the offending input field of an invalid-input error, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

func invalid(op, field string, err error) *Error {
	return &Error{Op: op, Kind: KindInvalidInput, Field: field, Err: err}
}
