// Package builder holds the runtime error types returned by generated Build
// methods.
package builder

import (
	"errors"
	"fmt"
)

// ErrUnsetField matches every UnsetFieldError through errors.Is.
var ErrUnsetField = errors.New("field is not set")

// UnsetFieldError reports the first required field, in declaration order,
// that had no value when Build was called.
type UnsetFieldError struct {
	Type  string // Struct being built, e.g. "Command"
	Field string // Field name as declared, e.g. "ID"
}

// Error implements error.
func (e *UnsetFieldError) Error() string {
	return fmt.Sprintf("field %s is not set", e.Field)
}

// Is reports whether target is ErrUnsetField.
func (e *UnsetFieldError) Is(target error) bool {
	return target == ErrUnsetField
}
