package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when user input cannot be processed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed is matched by every *ValidationError via errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
