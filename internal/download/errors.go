package download

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or incomplete user input: no usable
// URLs, unparseable advanced options, or an engine option-parse failure.
// It is always raised before a background run starts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
