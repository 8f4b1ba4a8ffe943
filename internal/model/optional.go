package model

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Optional is a patch field that is either unset or set to a value.  The JSON
// decoder only calls UnmarshalJSON for keys that are present in the payload,
// so an absent key stays unset while `null` on a pointer type becomes Set(nil).
// A `null` sent for a type that cannot hold one leaves the field unset and is
// remembered so that Validate can reject it.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns an Optional holding v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports whether the field was present.
func (o Optional[T]) IsSet() bool { return o.set }

// UnmarshalJSON marks the field as set and decodes the value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) && !nullable[T]() {
		var zero T
		o.value, o.set, o.null = zero, false, true
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.set, o.null = true, false
	return nil
}

// MarshalJSON encodes the held value; an unset Optional encodes as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o Optional[T]) sentNull() bool { return o.null }

// nullable reports whether JSON null has a meaning for T.
func nullable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

// apply copies the value into dst when the field is set.
func apply[T any](o Optional[T], dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}
