package sitecrawl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// FieldValue is one extracted field inside a Record.
type FieldValue struct {
	Name  string
	Value any
}

// Record holds the fields extracted from one page, in extraction order.
type Record []FieldValue

// Get returns the value stored for name.
func (r Record) Get(name string) (any, bool) {
	for _, fv := range r {
		if fv.Name == name {
			return fv.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as a JSON object whose keys keep the
// record's field order. HTML characters are not escaped.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := MarshalJSONValue(fv.Name)
		if err != nil {
			return nil, err
		}
		val, err := MarshalJSONValue(fv.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fv.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSONValue encodes v compactly without escaping <, >, and &.
func MarshalJSONValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Coerce returns v unchanged if it can be stored as JSON: nil, strings,
// booleans, numbers, and slices or string-keyed maps that encode cleanly.
// Anything else is replaced by its textual representation.
func Coerce(v any) any {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case string, bool, json.Number:
		return v
	case []byte:
		return fmt.Sprint(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if _, ok := v.(fmt.Stringer); ok {
			return fmt.Sprint(v)
		}
		if _, err := MarshalJSONValue(v); err != nil {
			return fmt.Sprint(v)
		}
		return v
	case reflect.Slice, reflect.Array:
		if _, err := MarshalJSONValue(v); err == nil {
			return v
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			if _, err := MarshalJSONValue(v); err == nil {
				return v
			}
		}
	}
	return fmt.Sprint(v)
}

// FormatValue renders v for human-readable messages. Strings are shown
// as-is, nil as "null", slices and maps as JSON.
func FormatValue(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if b, err := MarshalJSONValue(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
