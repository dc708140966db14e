// ABOUTME: Validation error type shared across the engine surface
// ABOUTME: Rejected input surfaces a field name and reason, state untouched
package models

import "fmt"

// ValidationError reports a required field that is missing or invalid.
// Operations return it before touching any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
