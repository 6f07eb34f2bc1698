package tiled

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustProperties(t *testing.T, content string) []Property {
	t.Helper()
	var props []Property
	if err := json.Unmarshal([]byte(content), &props); err != nil {
		t.Fatalf("unmarshal properties: %v", err)
	}
	return props
}

const propertiesJSON = `[
	{"name": "hp", "type": "int", "value": 30},
	{"name": "speed", "type": "float", "value": 1.5},
	{"name": "boss", "type": "bool", "value": false},
	{"name": "label", "type": "string", "value": "Slime"},
	{"name": "target", "type": "object", "value": 12},
	{"name": "tint", "type": "color", "value": "#ff112233"},
	{"name": "loot", "type": "class", "propertytype": "Loot", "value": {"Gold": 5, "ITEMS": ["gem", "key"]}},
	{"name": "empty", "type": "string"}
]`

func TestValueKind(t *testing.T) {
	props := mustProperties(t, propertiesJSON)
	want := map[string]ValueKind{
		"hp":     ValueNumber,
		"speed":  ValueNumber,
		"boss":   ValueBool,
		"label":  ValueString,
		"target": ValueNumber,
		"tint":   ValueString,
		"loot":   ValueObject,
		"empty":  ValueNull,
	}
	for _, p := range props {
		if got := p.Value.Kind(); got != want[p.Name] {
			t.Errorf("%s: Kind() = %v, want %v", p.Name, got, want[p.Name])
		}
	}
}

func TestGetScalars(t *testing.T) {
	props := mustProperties(t, propertiesJSON)

	hp, err := PropertyValue[int](props, "hp")
	if err != nil || hp != 30 {
		t.Errorf("hp = %v, %v; want 30", hp, err)
	}
	speed, err := PropertyValue[float64](props, "speed")
	if err != nil || speed != 1.5 {
		t.Errorf("speed = %v, %v; want 1.5", speed, err)
	}
	boss, err := PropertyValue[bool](props, "boss")
	if err != nil || boss {
		t.Errorf("boss = %v, %v; want false", boss, err)
	}
	label, err := PropertyValue[string](props, "label")
	if err != nil || label != "Slime" {
		t.Errorf("label = %q, %v; want Slime", label, err)
	}
	tint, err := PropertyValue[string](props, "tint")
	if err != nil || tint != "#ff112233" {
		t.Errorf("tint = %q, %v", tint, err)
	}
}

func TestGetObjectIsCaseInsensitive(t *testing.T) {
	type loot struct {
		Gold  int      `json:"gold"`
		Items []string `json:"items"`
	}

	props := mustProperties(t, propertiesJSON)
	p := PropertyByName(props, "loot")
	if p == nil {
		t.Fatal("loot property missing")
	}
	if p.PropertyType != "Loot" || p.Type != "class" {
		t.Errorf("type tags = %q/%q", p.Type, p.PropertyType)
	}

	got, err := Get[loot](*p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(loot{Gold: 5, Items: []string{"gem", "key"}}, got); diff != "" {
		t.Errorf("Get mismatch (-want+got):\n%v", diff)
	}

	generic, err := Get[map[string]any](*p)
	if err != nil {
		t.Fatal(err)
	}
	if generic["Gold"] != float64(5) {
		t.Errorf("generic[Gold] = %v", generic["Gold"])
	}
}

func TestGetShapeMismatch(t *testing.T) {
	props := mustProperties(t, propertiesJSON)

	tests := []struct {
		name string
		get  func(Property) error
	}{
		{"label", func(p Property) error { _, err := Get[int](p); return err }},
		{"speed", func(p Property) error { _, err := Get[int](p); return err }},
		{"hp", func(p Property) error { _, err := Get[string](p); return err }},
		{"boss", func(p Property) error { _, err := Get[[]int](p); return err }},
		{"loot", func(p Property) error { _, err := Get[bool](p); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.get(*PropertyByName(props, tt.name))
			if !errors.Is(err, ErrValueShapeMismatch) {
				t.Errorf("error = %v, want ErrValueShapeMismatch", err)
			}
		})
	}
}

func TestTypeTagIsNotValidated(t *testing.T) {
	// declared int, holds a string: extraction follows the payload.
	p := mustProperties(t, `[{"name": "odd", "type": "int", "value": "seven"}]`)[0]

	s, err := Get[string](p)
	if err != nil || s != "seven" {
		t.Errorf("Get[string] = %q, %v", s, err)
	}
	if _, err := Get[int](p); !errors.Is(err, ErrValueShapeMismatch) {
		t.Errorf("Get[int] error = %v, want ErrValueShapeMismatch", err)
	}
}

func TestPropertyValueMissing(t *testing.T) {
	_, err := PropertyValue[int](nil, "nope")
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("error = %v, want ErrPropertyNotFound", err)
	}
}

func TestValueMarshalKeepsPayload(t *testing.T) {
	props := mustProperties(t, propertiesJSON)
	out, err := json.Marshal(PropertyByName(props, "hp").Value)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "30" {
		t.Errorf("Marshal = %s, want 30", out)
	}

	out, err = json.Marshal(PropertyByName(props, "empty").Value)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "null" {
		t.Errorf("Marshal = %s, want null", out)
	}
}
