package testutils

import "math"

// Document is a decoded JSON object.
type Document map[string]any

// Lookup returns the raw value stored under key.
func (d Document) Lookup(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// String returns the value under key if it is a string.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Int returns the value under key if it is a whole number.
func (d Document) Int(key string) (int, bool) {
	f, ok := d[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Bool returns the value under key if it is a boolean.
func (d Document) Bool(key string) (bool, bool) {
	b, ok := d[key].(bool)
	return b, ok
}

// Array returns the value under key if it is an array.
func (d Document) Array(key string) ([]any, bool) {
	a, ok := d[key].([]any)
	return a, ok
}

// Object returns the value under key if it is an object.
func (d Document) Object(key string) (Document, bool) {
	m, ok := d[key].(map[string]any)
	return Document(m), ok
}

// truthy reports whether a decoded JSON value is non-empty.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
