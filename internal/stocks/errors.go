package stocks

import (
	"fmt"
	"strings"
)

type ValidationKind string

const (
	KindEmptyInput    ValidationKind = "empty_input"
	KindMissingFields ValidationKind = "missing_fields"
	KindInvalidField  ValidationKind = "invalid_field"
)

// ValidationError reports input the aggregator refuses. It always maps to a
// client error.
type ValidationError struct {
	Kind ValidationKind

	// Missing is set for KindMissingFields.
	Missing []string

	// Field and Index locate the offending value for KindInvalidField.
	Field string
	Index int
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	switch e.Kind {
	case KindEmptyInput:
		return "Input data cannot be empty"
	case KindMissingFields:
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	case KindInvalidField:
		return fmt.Sprintf("Invalid value for field %q in record %d", e.Field, e.Index)
	default:
		return "validation error"
	}
}

func ErrEmptyInput() *ValidationError {
	return &ValidationError{Kind: KindEmptyInput}
}

func ErrMissingFields(missing []string) *ValidationError {
	return &ValidationError{Kind: KindMissingFields, Missing: missing}
}

func ErrInvalidField(field string, index int) *ValidationError {
	return &ValidationError{Kind: KindInvalidField, Field: field, Index: index}
}
