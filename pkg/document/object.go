// Package document provides an order-preserving JSON model.
//
// Values are one of *Object, []any, string, json.Number, bool or nil.
// Objects remember key insertion order so a merged document serializes
// with keys in the order they were first seen, and number literals keep
// their original text.
package document

import (
	"encoding/json"
	"slices"
)

// Object is a JSON object that preserves key insertion order.
// The zero value is not usable; create one with NewObject.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position and only its value is replaced.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) index(key string) (int, bool) {
	if _, ok := o.values[key]; !ok {
		return 0, false
	}
	return slices.Index(o.keys, key), true
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Update copies every top-level entry of src into o, in src's order.
// Colliding keys take src's value whole; nested objects are not merged.
func (o *Object) Update(src *Object) {
	if src == nil {
		return
	}
	for _, k := range src.keys {
		o.Set(k, src.values[k])
	}
}

// Range calls fn for each entry in order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// MarshalJSON implements json.Marshaler using compact encoding.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// Plain converts v into the generic form produced by encoding/json
// (map[string]any, []any, json.Number, ...). Key order is lost.
// Schema validators consume this form.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		m := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			m[k] = Plain(t.values[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	case float64:
		return json.Number(formatFloat(t))
	case int:
		return json.Number(formatInt(int64(t)))
	case int64:
		return json.Number(formatInt(t))
	default:
		return v
	}
}
