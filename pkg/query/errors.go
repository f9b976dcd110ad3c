package query

import "fmt"

// ValidationError represents a builder or combinator precondition
// failure. Construction is all-or-nothing: a builder either returns a
// complete Query or a ValidationError naming the violated input.
type ValidationError struct {
	// Field is the name of the invalid input
	Field string

	// Message describes what is invalid about the input
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("query validation error for %q: %s", e.Field, e.Message)
}
