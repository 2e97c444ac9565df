package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the wardrobe domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist or does not
	// belong to the calling user. Ownership misses deliberately look identical
	// to missing rows so item IDs cannot be probed across users.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates the item payload violates domain constraints.
	ErrInvalidItem = errors.New("invalid item")
)

// ValidationError carries field-level messages for an item payload that
// violates domain constraints. It unwraps to ErrInvalidItem so errors.Is()
// checks keep working; pkg/errhttp renders it with the same
// {"error": "Validation failed.", "fields": ...} body the request validator
// uses, so clients see one shape for all validation failures.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

// Add appends a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", ErrInvalidItem, strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidItem }
