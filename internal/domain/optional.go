package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Optional is a patch field that distinguishes "not provided" from an
// explicit null. Set is true when the field was provided; Value is nil when
// it was provided as null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload, which
// is what makes Set meaningful. An empty or blank string clears the field the
// same way null does, matching the create payload where "" means none.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if isNullish(data) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func isNullish(data []byte) bool {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return true
	}
	var s string
	if len(data) == 0 || data[0] != '"' || json.Unmarshal(data, &s) != nil {
		return false
	}
	return strings.TrimSpace(s) == ""
}
