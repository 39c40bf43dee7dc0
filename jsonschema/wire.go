package jsonschema

import (
	"errors"
	"fmt"

	"github.com/reoring/jsonadapt/value"
)

// ErrInvalidSchema is returned by FromValue for documents that do not have
// the schema wire shape.
var ErrInvalidSchema = errors.New("jsonschema: invalid schema document")

// ToValue renders s in its wire shape. Fixed-shape object schemas without
// additional properties emit "additionalProperties": false.
func (s Schema) ToValue() value.Value {
	o := value.NewObject()
	if s.Title != "" {
		o.Set("title", value.String(s.Title))
	}
	if s.Description != "" {
		o.Set("description", value.String(s.Description))
	}
	if s.Type != value.TypeUnknown {
		o.Set("type", value.String(s.Type.String()))
	}
	if s.ReadOnly {
		o.Set("readOnly", value.Bool(true))
	}
	if s.WriteOnly {
		o.Set("writeOnly", value.Bool(true))
	}
	if s.Default != nil && !s.Default.IsEmpty() {
		o.Set("default", s.Default.Clone())
	}
	if s.Minimum != nil {
		o.Set("minimum", number(*s.Minimum))
	}
	if s.Maximum != nil {
		o.Set("maximum", number(*s.Maximum))
	}
	if len(s.Enums) > 0 {
		enums := make([]value.Value, len(s.Enums))
		for i, e := range s.Enums {
			enums[i] = value.String(e)
		}
		o.Set("enum", value.Array(enums...))
	}
	if s.Properties.Len() > 0 {
		props := value.NewObject()
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			props.Set(p.Key, p.Value.ToValue())
		}
		o.Set("properties", value.ObjectOf(props))
	}
	if len(s.Required) > 0 {
		req := make([]value.Value, len(s.Required))
		for i, r := range s.Required {
			req[i] = value.String(r)
		}
		o.Set("required", value.Array(req...))
	}
	switch {
	case len(s.AdditionalProperties) > 0:
		o.Set("additionalProperties", s.AdditionalProperties[0].ToValue())
	case s.IsObject() && !s.IsMap():
		o.Set("additionalProperties", value.Bool(false))
	}
	if len(s.Items) > 0 {
		o.Set("items", s.Items[0].ToValue())
	}
	if s.MinItems != nil {
		o.Set("minItems", value.Int(int64(*s.MinItems)))
	}
	if s.MaxItems != nil {
		o.Set("maxItems", value.Int(int64(*s.MaxItems)))
	}
	if len(s.OneOf) > 0 {
		alts := make([]value.Value, len(s.OneOf))
		for i, a := range s.OneOf {
			alts[i] = a.ToValue()
		}
		o.Set("oneOf", value.Array(alts...))
	}
	return value.ObjectOf(o)
}

func number(f float64) value.Value {
	if value.IsIntegral(f) {
		return value.Int(int64(f))
	}
	return value.Float(f)
}

// MarshalJSON implements json.Marshaler using the wire shape.
func (s Schema) MarshalJSON() ([]byte, error) { return value.Encode(s.ToValue()) }

// UnmarshalJSON implements json.Unmarshaler using the wire shape.
func (s *Schema) UnmarshalJSON(b []byte) error {
	v, err := value.DecodeBytes(b)
	if err != nil {
		return err
	}
	out, err := FromValue(v)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// FromValue reads a schema from its wire shape. Unknown keywords are
// ignored; "additionalProperties": true becomes a wildcard schema.
func FromValue(v value.Value) (Schema, error) {
	return fromValue(v, "")
}

func fromValue(v value.Value, at string) (Schema, error) {
	if b, err := v.AsBool(); err == nil {
		// boolean schemas: true accepts anything
		if b {
			return Any(), nil
		}
		return Schema{}, invalid(at, "false is only allowed for additionalProperties")
	}
	o, err := v.AsObject()
	if err != nil {
		return Schema{}, invalid(at, "expected object, got "+v.Type().String())
	}
	var s Schema
	var ferr error
	o.Range(func(k string, fv value.Value) bool {
		ferr = s.readKeyword(k, fv, join(at, k))
		return ferr == nil
	})
	if ferr != nil {
		return Schema{}, ferr
	}
	return s, nil
}

func (s *Schema) readKeyword(k string, fv value.Value, at string) error {
	var err error
	switch k {
	case "title":
		s.Title, err = fv.AsString()
	case "description":
		s.Description, err = fv.AsString()
	case "type":
		var name string
		if name, err = fv.AsString(); err == nil {
			t, ok := value.ParseType(name)
			if !ok {
				return invalid(at, "unknown type '"+name+"'")
			}
			s.Type = t
		}
	case "readOnly":
		s.ReadOnly, err = fv.AsBool()
	case "writeOnly":
		s.WriteOnly, err = fv.AsBool()
	case "default":
		d := fv.Clone()
		s.Default = &d
	case "minimum":
		var f float64
		if f, err = fv.AsFloat(); err == nil {
			s.Minimum = &f
		}
	case "maximum":
		var f float64
		if f, err = fv.AsFloat(); err == nil {
			s.Maximum = &f
		}
	case "enum":
		s.Enums, err = stringList(fv)
	case "required":
		s.Required, err = stringList(fv)
	case "properties":
		var props *value.Object
		if props, err = fv.AsObject(); err == nil {
			s.Properties = NewProperties()
			props.Range(func(name string, pv value.Value) bool {
				var ps Schema
				if ps, err = fromValue(pv, join(at, name)); err != nil {
					return false
				}
				s.Properties.Set(name, ps)
				return true
			})
		}
	case "additionalProperties":
		if b, berr := fv.AsBool(); berr == nil {
			s.AdditionalProperties = nil
			if b {
				s.AdditionalProperties = []Schema{Any()}
			}
			return nil
		}
		var ap Schema
		if ap, err = fromValue(fv, at); err == nil {
			s.AdditionalProperties = []Schema{ap}
		}
	case "items":
		var it Schema
		if it, err = fromValue(fv, at); err == nil {
			s.Items = []Schema{it}
		}
	case "minItems":
		s.MinItems, err = count(fv)
	case "maxItems":
		s.MaxItems, err = count(fv)
	case "oneOf":
		var alts []value.Value
		if alts, err = fv.AsArray(); err == nil {
			s.OneOf = make([]Schema, 0, len(alts))
			for i, a := range alts {
				var as Schema
				if as, err = fromValue(a, fmt.Sprintf("%s[%d]", at, i)); err != nil {
					return err
				}
				s.OneOf = append(s.OneOf, as)
			}
		}
	}
	if err != nil {
		if errors.Is(err, ErrInvalidSchema) {
			return err
		}
		return invalid(at, err.Error())
	}
	return nil
}

func stringList(v value.Value) ([]string, error) {
	arr, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, err := e.AsString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func count(v value.Value) (*int, error) {
	f, err := v.AsFloat()
	if err != nil {
		return nil, err
	}
	if f < 0 || !value.IsIntegral(f) {
		return nil, fmt.Errorf("expected non-negative integer, got %v", f)
	}
	n := int(f)
	return &n, nil
}

func join(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func invalid(at, msg string) error {
	if at == "" {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, msg)
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidSchema, at, msg)
}
