package jsonadapt

import (
	"strings"

	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Validate checks v against s and returns every violation found, each with
// the path of the offending node. A nil result means v conforms.
//
// Checks are exhaustive except for type mismatches: once a node has the
// wrong type none of its constraints or children are inspected.
func Validate(v value.Value, s js.Schema) Issues {
	var out Issues
	validateAt(Root(), v, &s, &out)
	return out
}

// Conforms reports whether Validate finds no issues.
func Conforms(v value.Value, s js.Schema) bool { return len(Validate(v, s)) == 0 }

func validateAt(p PathRef, v value.Value, s *js.Schema, out *Issues) {
	if v.IsEmpty() && s.Default != nil {
		v = *s.Default
	}
	if s.IsWildcard() {
		return
	}
	if s.IsOneOf() {
		validateOneOf(p, v, s, out)
		return
	}
	if !js.TypeCompatible(s.Type, v.Type()) {
		*out = append(*out, p.Issue(CodeInvalidType, map[string]any{
			"expected": s.Type.String(),
			"actual":   v.Type().String(),
		}))
		return
	}
	switch {
	case s.IsNumeric():
		validateNumber(p, v, s, out)
	case s.IsEnum():
		validateEnum(p, v, s, out)
	case s.IsObject():
		obj, _ := v.AsObject()
		if s.IsMap() {
			validateMap(p, obj, s, out)
		} else {
			validateFixed(p, obj, s, out)
		}
	case s.IsArray():
		arr, _ := v.AsArray()
		validateArray(p, arr, s, out)
	}
}

// validateOneOf tries each alternative in isolation; sub-issues of failed
// alternatives are discarded.
func validateOneOf(p PathRef, v value.Value, s *js.Schema, out *Issues) {
	for i := range s.OneOf {
		var scratch Issues
		validateAt(p, v, &s.OneOf[i], &scratch)
		if len(scratch) == 0 {
			return
		}
	}
	*out = append(*out, p.Issue(CodeOneOf, nil))
}

func validateNumber(p PathRef, v value.Value, s *js.Schema, out *Issues) {
	f, err := v.AsFloat()
	if err != nil {
		return
	}
	if s.Minimum != nil && f < *s.Minimum {
		*out = append(*out, p.Issue(CodeTooSmall, map[string]any{"value": v.String(), "minimum": *s.Minimum}))
	}
	if s.Maximum != nil && f > *s.Maximum {
		*out = append(*out, p.Issue(CodeTooBig, map[string]any{"value": v.String(), "maximum": *s.Maximum}))
	}
}

func validateEnum(p PathRef, v value.Value, s *js.Schema, out *Issues) {
	str, err := v.AsString()
	if err == nil {
		for _, e := range s.Enums {
			if e == str {
				return
			}
		}
	} else {
		str = v.String()
	}
	*out = append(*out, p.Issue(CodeInvalidEnum, map[string]any{
		"value":   str,
		"allowed": quoteList(s.Enums),
	}))
}

// quoteList renders ['a', 'b'].
func quoteList(names []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(n)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

func validateMap(p PathRef, obj *value.Object, s *js.Schema, out *Issues) {
	items := &s.Items[0]
	obj.Range(func(k string, mv value.Value) bool {
		validateAt(p.Field(k), mv, items, out)
		return true
	})
}

func validateFixed(p PathRef, obj *value.Object, s *js.Schema, out *Issues) {
	for pp := s.Properties.Oldest(); pp != nil; pp = pp.Next() {
		name := pp.Key
		mv, present := obj.Get(name)
		present = present && !mv.IsEmpty()
		switch {
		case pp.Value.ReadOnly:
			// never demanded from input, rejected when supplied
			if present {
				*out = append(*out, p.Issue(CodeReadOnly, map[string]any{"name": name}))
			}
		case present:
			validateAt(p.Field(name), mv, &pp.Value, out)
		case s.IsRequired(name):
			*out = append(*out, p.Issue(CodeRequired, map[string]any{"name": name}))
		}
	}
	obj.Range(func(k string, mv value.Value) bool {
		if _, declared := s.Property(k); declared || mv.IsEmpty() {
			return true
		}
		if len(s.AdditionalProperties) == 0 {
			*out = append(*out, p.Issue(CodeUnknownKey, map[string]any{"name": k}))
			return true
		}
		validateAt(p.Field(k), mv, &s.AdditionalProperties[0], out)
		return true
	})
}

func validateArray(p PathRef, arr []value.Value, s *js.Schema, out *Issues) {
	if len(s.Items) > 0 {
		for i := range arr {
			validateAt(p.Index(i), arr[i], &s.Items[0], out)
		}
	}
	n := len(arr)
	if s.MinItems != nil && n < *s.MinItems {
		*out = append(*out, p.Issue(CodeTooShort, map[string]any{"count": n, "min": *s.MinItems}))
	}
	if s.MaxItems != nil && n > *s.MaxItems {
		*out = append(*out, p.Issue(CodeTooLong, map[string]any{"count": n, "max": *s.MaxItems}))
	}
}
