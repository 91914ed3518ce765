// Package normalize turns edited resume JSON into a fully populated resume record.
package normalize

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches any *MalformedInputError via errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// ParseErrorMessage is shown to the user while the JSON text does not parse.
const ParseErrorMessage = "Invalid JSON. Please fix the input to refresh the preview."

// MalformedInputError represents JSON text that could not be parsed into a resume payload
type MalformedInputError struct {
	Message string
	Cause   error
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed input: %s", e.Message)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
