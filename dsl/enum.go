package dsl

import (
	"errors"
	"fmt"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// ErrUnknownEnum is the cause of enum failures: a native value without a
// registered name, or an input string naming no variant.
var ErrUnknownEnum = errors.New("dsl: unknown enum value")

// EnumCase pairs a wire name with its native value.
type EnumCase[T comparable] struct {
	Name  string
	Value T
}

// EnumValue declares one variant of an enumeration.
func EnumValue[T comparable](name string, v T) EnumCase[T] {
	return EnumCase[T]{Name: name, Value: v}
}

// Enum returns the adapter for an enumeration serialized by name. Names and
// values must be unique; Enum panics otherwise.
func Enum[T comparable](cases ...EnumCase[T]) Adapter[T] {
	a := enumAdapter[T]{
		names:  make([]string, 0, len(cases)),
		byName: make(map[string]T, len(cases)),
		byVal:  make(map[T]string, len(cases)),
	}
	for _, c := range cases {
		if _, dup := a.byName[c.Name]; dup {
			panic(fmt.Sprintf("dsl: duplicate enum name %q", c.Name))
		}
		if _, dup := a.byVal[c.Value]; dup {
			panic(fmt.Sprintf("dsl: duplicate enum value %v", c.Value))
		}
		a.names = append(a.names, c.Name)
		a.byName[c.Name] = c.Value
		a.byVal[c.Value] = c.Name
	}
	return a
}

type enumAdapter[T comparable] struct {
	names  []string
	byName map[string]T
	byVal  map[T]string
}

func (a enumAdapter[T]) Schema(*T) js.Schema {
	return js.Schema{Type: value.TypeString, Enums: append([]string(nil), a.names...)}
}

func (a enumAdapter[T]) Serialize(v *T) (value.Value, error) {
	name, ok := a.byVal[*v]
	if !ok {
		it := jsonadapt.Root().Invalid(fmt.Errorf("%w: %v", ErrUnknownEnum, *v))
		return value.Value{}, it
	}
	return value.String(name), nil
}

func (a enumAdapter[T]) Deserialize(j value.Value, dst *T) error {
	s, err := j.AsString()
	if err != nil {
		return typeIssue(value.TypeString, j)
	}
	v, ok := a.byName[s]
	if !ok {
		iss := jsonadapt.Validate(j, a.Schema(nil))
		if len(iss) == 0 {
			// no cases registered
			return jsonadapt.Root().Invalid(fmt.Errorf("%w: %q", ErrUnknownEnum, s))
		}
		iss[0].Cause = ErrUnknownEnum
		return iss[0]
	}
	*dst = v
	return nil
}
