package errors

import (
	"errors"
	"strings"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// FieldError is a single user-correctable problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one FieldError per violated field together with the
// rejected input so it can be shown back to the user.
type ValidationError struct {
	Fields []FieldError
	Draft  any
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the message recorded for field, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}
