package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of the validation error family. Callers match
// it with errors.Is; services return the richer *ValidationError, which
// unwraps to it. Not-found conditions use storage.ErrNotFound, and backend
// failures degrade to empty results instead of surfacing as errors.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports which request field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap makes every validation error match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
