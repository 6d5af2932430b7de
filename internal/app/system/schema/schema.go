// Package schema validates and normalizes request payloads before they reach
// any store call.
//
// Each resource models its input as a struct of pointer fields. A nil pointer
// means "not sent", which is what lets the same type serve both create (every
// required field must be present) and partial update (only the fields present
// are checked).
package schema

import (
	"fmt"
	"strings"
)

// FieldError is one violated constraint, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured failure returned by validation. A nil or empty
// Errors means the payload is valid.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Has reports whether field has at least one error.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Field builds a single-field Errors value.
func Field(field, format string, args ...any) Errors {
	return Errors{{Field: field, Message: fmt.Sprintf(format, args...)}}
}

// Validator is implemented by every resource input type.
type Validator interface {
	Validate(partial bool) Errors
}
