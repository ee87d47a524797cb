// Package validation provides the loose-input coercion checks shared by the
// descriptor's option handling. Coercions report failure with a bool; the
// caller owns error construction so messages can name the offending option.
package validation

import (
	"reflect"

	"github.com/spf13/cast"
)

// Bool accepts only a true boolean value
func Bool(value any) (bool, bool) {
	b, ok := value.(bool)
	return b, ok
}

// Int accepts any integer-kinded value and coerces it to int. Strings,
// floats and booleans are rejected even when cast could convert them: an
// option like limit must be supplied as an actual integer.
func Int(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return 0, false
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Slice accepts any slice-kinded value and returns its elements as []any.
// Byte slices are rejected: in option position they are opaque values, not
// collections.
func Slice(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
