package record

import (
	"errors"
	"fmt"
)

// ValidationError indicates a record candidate with an empty required field.
//
// Raised synchronously before anything is persisted; an operation that
// returns a ValidationError has not touched the store.
type ValidationError struct {
	// Field is the name of the empty field ("name" or "value").
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("record must have a non-empty %s", e.Field)
}

// IsValidationError returns true if the error is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
