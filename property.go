package tiled

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind tells which JSON shape a property value holds.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueObject
	ValueArray
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueObject:
		return "object"
	case ValueArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a property payload whose Go type is decided by the caller.
// The raw JSON is kept and decoded on demand.
type Value struct {
	raw json.RawMessage
}

// NewValue wraps a raw JSON payload.
func NewValue(raw []byte) Value {
	return Value{raw: bytes.Clone(bytes.TrimSpace(raw))}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = NewValue(data)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v Value) Kind() ValueKind {
	if len(v.raw) == 0 {
		return ValueNull
	}
	switch v.raw[0] {
	case 't', 'f':
		return ValueBool
	case '"':
		return ValueString
	case '{':
		return ValueObject
	case '[':
		return ValueArray
	case 'n':
		return ValueNull
	default:
		return ValueNumber
	}
}

// Raw returns the JSON text of the value.
func (v Value) Raw() json.RawMessage {
	return v.raw
}

func (v Value) String() string {
	return string(v.raw)
}

// Decode interprets the value as dst's type. Object field names match case-insensitively.
func (v Value) Decode(dst any) error {
	raw := v.raw
	if len(raw) == 0 {
		raw = []byte("null")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: cannot read %s as %T: %w", ErrValueShapeMismatch, v.Kind(), dst, err)
	}
	return nil
}

// Property is a custom property attached to a map, layer, object, tileset or tile.
// Type is advisory ("string", "int", "float", "bool", "color", "file", "object", "class")
// and is not checked against Value.
type Property struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PropertyType string `json:"propertytype,omitempty"`
	Value        Value  `json:"value"`
}

// Get interprets the property's value as T.
func Get[T any](p Property) (T, error) {
	var v T
	if err := p.Value.Decode(&v); err != nil {
		return v, fmt.Errorf("property %q: %w", p.Name, err)
	}
	return v, nil
}

// PropertyValue looks up a property by name and interprets its value as T.
func PropertyValue[T any](props []Property, name string) (T, error) {
	p := PropertyByName(props, name)
	if p == nil {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrPropertyNotFound, name)
	}
	return Get[T](*p)
}
