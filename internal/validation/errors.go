package validation

import (
	"fmt"
	"strings"
)

// FieldError is one user-correctable problem, addressed by field path so
// callers can render it next to the offending input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is an ordered collection of field errors. It implements error but is
// never an invariant failure; callers distinguish the two with errors.As.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
