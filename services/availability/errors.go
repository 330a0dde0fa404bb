package availability

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for lookups of unknown exception/blocked-date ids.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed rule or exception at write time, with
// the field that failed. Read paths never produce it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
