package models

import (
	"fmt"
	"strings"
)

// ItemName is a value object representing a valid clothing item name.
// Encapsulates validation rules: 1 <= len(name) <= 255 after trimming.
type ItemName string

const (
	minItemNameLength = 1
	maxItemNameLength = 255
)

// NewItemName constructs a valid ItemName or returns an error if constraints
// are violated. Leading and trailing whitespace is trimmed, so a
// whitespace-only input fails the required check.
func NewItemName(s string) (ItemName, error) {
	s = strings.TrimSpace(s)
	if len(s) < minItemNameLength {
		return "", fmt.Errorf("name is required")
	}
	if len(s) > maxItemNameLength {
		return "", fmt.Errorf("name must not exceed %d characters", maxItemNameLength)
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
