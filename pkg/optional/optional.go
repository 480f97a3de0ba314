// Package optional provides a tri-state JSON field: absent, explicit null,
// or a value. Patch requests need the distinction so a client can clear a
// nullable column with null while an omitted field keeps its prior value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is the tri-state holder. The zero value reports absent, so it can
// sit directly in request and patch structs.
type Value[T any] struct {
	present bool
	null    bool
	value   T
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{present: true, value: v}
}

// Null returns a present, explicit-null value.
func Null[T any]() Value[T] {
	return Value[T]{present: true, null: true}
}

// Present reports whether the field appeared in the input at all.
func (v Value[T]) Present() bool {
	return v.present
}

// IsNull reports whether the field was an explicit null.
func (v Value[T]) IsNull() bool {
	return v.present && v.null
}

// Get returns the value and whether it is usable, that is present and
// non-null.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present && !v.null
}

// Ptr renders the tri-state as a nullable pointer: nil for absent or null,
// a pointer to a copy of the value otherwise.
func (v Value[T]) Ptr() *T {
	if !v.present || v.null {
		return nil
	}
	val := v.value
	return &val
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.present = true
	if bytes.Equal(data, []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
