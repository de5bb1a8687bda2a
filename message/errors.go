package message

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError, using errors.Is.
	ErrValidation = errors.New("message: validation failed")

	// ErrMissingType is returned when parsing a message without event type.
	ErrMissingType = errors.New("missing event type")

	// ErrUnknownType is returned when parsing a message with an event type
	// that has no registered variant.
	ErrUnknownType = errors.New("unknown event type")

	// ErrMalformed is returned when a message is not a JSON object,
	// or its fields do not fit the variant selected by its event type.
	ErrMalformed = errors.New("malformed message")

	// ErrUnknownField is returned when looking up a field an Event does not have.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError is returned by Event.Validate, and therefore by Serialize,
// when a required field is missing or holds an invalid value.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("message: invalid '%s' event, field '%s' %s", err.Kind, err.Field, err.Reason)
}

// Is makes every ValidationError match ErrValidation.
func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation //nolint:errorlint // Sentinel comparison is intended.
}

// MessageError is returned when a wire message cannot be turned into an Event.
//
// Err is one of ErrMissingType, ErrUnknownType or ErrMalformed.
type MessageError struct {
	Type  string
	Err   error
	Cause error
}

func (err *MessageError) Error() string {
	switch {
	case errors.Is(err.Err, ErrUnknownType):
		return fmt.Sprintf("message: %s: %s", err.Err, err.Type)
	case err.Cause != nil:
		return fmt.Sprintf("message: %s, %s", err.Err, err.Cause)
	default:
		return fmt.Sprintf("message: %s", err.Err)
	}
}

// Unwrap returns both the sentinel error and the underlying cause, if any.
func (err *MessageError) Unwrap() []error {
	if err.Cause == nil {
		return []error{err.Err}
	}

	return []error{err.Err, err.Cause}
}
