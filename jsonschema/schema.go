// Package jsonschema holds the schema model produced by adapters and consumed
// by the validator, plus its JSON wire shape.
//
// Only a subset of JSON Schema is modelled: typed primitives, numeric
// bounds, string enums, fixed-shape objects, uniform-value maps, arrays and
// oneOf unions.
package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/jsonadapt/value"
)

// Properties maps property names to their schemas in declaration order.
type Properties = orderedmap.OrderedMap[string, Schema]

// NewProperties returns an empty property table.
func NewProperties() *Properties { return orderedmap.New[string, Schema]() }

// Schema describes the accepted shape of a JSON value.
//
// AdditionalProperties and Items hold zero or one element. An object schema
// with no properties and one Items element is a uniform-value map.
type Schema struct {
	Title       string
	Description string
	Type        value.Type
	ReadOnly    bool
	WriteOnly   bool
	Default     *value.Value

	Minimum *float64
	Maximum *float64

	Enums []string

	Properties           *Properties
	Required             []string
	AdditionalProperties []Schema

	Items    []Schema
	MinItems *int
	MaxItems *int

	OneOf []Schema
}

// Any returns the wildcard schema.
func Any() Schema { return Schema{} }

// Of returns a schema that only constrains the type.
func Of(t value.Type) Schema { return Schema{Type: t} }

// ArrayOf returns an array schema with a uniform element schema.
func ArrayOf(items Schema) Schema {
	return Schema{Type: value.TypeArray, Items: []Schema{items}}
}

// MapOf returns a uniform-value map schema.
func MapOf(items Schema) Schema {
	return Schema{Type: value.TypeObject, Items: []Schema{items}}
}

// IsWildcard reports whether s accepts any value.
func (s *Schema) IsWildcard() bool { return s.Type == value.TypeUnknown && len(s.OneOf) == 0 }

// IsOneOf reports whether s is a union.
func (s *Schema) IsOneOf() bool { return len(s.OneOf) > 0 }

// IsNumeric reports whether s is an integer or number schema.
func (s *Schema) IsNumeric() bool {
	return s.Type == value.TypeInteger || s.Type == value.TypeNumber
}

// IsEnum reports whether s restricts values to a set of strings.
func (s *Schema) IsEnum() bool { return len(s.Enums) > 0 }

// IsObject reports whether s is an object schema, fixed-shape or map.
func (s *Schema) IsObject() bool { return s.Type == value.TypeObject }

// IsArray reports whether s is an array schema.
func (s *Schema) IsArray() bool { return s.Type == value.TypeArray }

// IsMap reports whether s is a uniform-value map.
func (s *Schema) IsMap() bool {
	return s.IsObject() && s.Properties.Len() == 0 && len(s.Items) > 0
}

// TypeCompatible reports whether a value of type actual satisfies a schema
// typed want. Integers satisfy number schemas; everything else must match.
func TypeCompatible(want, actual value.Type) bool {
	return want == actual || (want == value.TypeNumber && actual == value.TypeInteger)
}

// Property looks up a declared property.
func (s *Schema) Property(name string) (Schema, bool) {
	if s.Properties == nil {
		return Schema{}, false
	}
	return s.Properties.Get(name)
}

// SetProperty declares or replaces a property, keeping its position.
func (s *Schema) SetProperty(name string, p Schema) {
	if s.Properties == nil {
		s.Properties = NewProperties()
	}
	s.Properties.Set(name, p)
}

// IsRequired reports whether name is listed as required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AddRequired appends name to Required once.
func (s *Schema) AddRequired(name string) {
	if !s.IsRequired(name) {
		s.Required = append(s.Required, name)
	}
}

// Clone returns a deep copy of s.
func (s Schema) Clone() Schema {
	out := s
	if s.Default != nil {
		d := s.Default.Clone()
		out.Default = &d
	}
	if s.Minimum != nil {
		m := *s.Minimum
		out.Minimum = &m
	}
	if s.Maximum != nil {
		m := *s.Maximum
		out.Maximum = &m
	}
	if s.MinItems != nil {
		n := *s.MinItems
		out.MinItems = &n
	}
	if s.MaxItems != nil {
		n := *s.MaxItems
		out.MaxItems = &n
	}
	out.Enums = append([]string(nil), s.Enums...)
	out.Required = append([]string(nil), s.Required...)
	out.AdditionalProperties = cloneAll(s.AdditionalProperties)
	out.Items = cloneAll(s.Items)
	out.OneOf = cloneAll(s.OneOf)
	if s.Properties != nil {
		out.Properties = NewProperties()
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			out.Properties.Set(p.Key, p.Value.Clone())
		}
	}
	return out
}

func cloneAll(in []Schema) []Schema {
	if in == nil {
		return nil
	}
	out := make([]Schema, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
