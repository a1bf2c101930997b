// Package relation normalizes related-record payloads whose JSON shape
// depends on relationship cardinality metadata: the same join may arrive
// as a single object, a one-element array, or null. Downstream code only
// ever sees "the first related record, or absent".
package relation

import (
	"bytes"
	"encoding/json"
)

// Ref holds at most one related record of type T.
type Ref[T any] struct {
	value   T
	present bool
}

// Get returns the related record and whether one is present.
func (r Ref[T]) Get() (T, bool) {
	return r.value, r.present
}

// Present reports whether a related record resolved.
func (r Ref[T]) Present() bool {
	return r.present
}

// Set stores a related record.
func (r *Ref[T]) Set(value T) {
	r.value = value
	r.present = true
}

// UnmarshalJSON accepts an object, an array (first element wins), or null.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	*r = Ref[T]{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			r.value = list[0]
			r.present = true
		}
		return nil
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	r.value = value
	r.present = true
	return nil
}

// MarshalJSON writes the record, or null when absent.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if !r.present {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}
