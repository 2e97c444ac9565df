package httpx

import "encoding/json"

// Nullable is a tri-state JSON field for partial-update payloads:
// absent (leave unchanged), explicit null (clear), or a value (set).
// The zero value means the field was absent from the payload.
type Nullable[T any] struct {
	Set   bool // field appeared in the payload
	Valid bool // field carried a non-null value
	Value T
}

// UnmarshalJSON records presence and distinguishes null from a value.
// encoding/json only calls this when the key is present, which is what
// makes the absent/null distinction observable.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns a pointer to the value, or nil when the field was null.
// Call only when Set is true.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
