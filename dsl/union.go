package dsl

import (
	"errors"
	"fmt"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// ErrNoVariant is the cause of union failures: a native value holding no
// registered alternative, or input matching none of them.
var ErrNoVariant = errors.New("dsl: no union variant matches")

// Variant is one alternative of a Union over T.
type Variant[T any] struct {
	match  func(*T) bool
	schema func(*T) js.Schema
	ser    func(*T) (value.Value, error)
	de     func(value.Value, *T) error
}

// VariantOf declares an alternative whose payload V is stored inside T.
// unwrap reports whether a T currently holds this alternative.
func VariantOf[T, V any](ad Adapter[V], wrap func(V) T, unwrap func(T) (V, bool)) Variant[T] {
	return Variant[T]{
		match: func(t *T) bool {
			_, ok := unwrap(*t)
			return ok
		},
		schema: func(t *T) js.Schema {
			if t != nil {
				if v, ok := unwrap(*t); ok {
					return ad.Schema(&v)
				}
			}
			return ad.Schema(nil)
		},
		ser: func(t *T) (value.Value, error) {
			v, _ := unwrap(*t)
			return ad.Serialize(&v)
		},
		de: func(j value.Value, t *T) error {
			var v V
			if err := ad.Deserialize(j, &v); err != nil {
				return err
			}
			*t = wrap(v)
			return nil
		},
	}
}

// Case declares an alternative of an interface union T implemented by V.
// It panics when V does not implement T.
func Case[T, V any](ad Adapter[V]) Variant[T] {
	var zero V
	if _, ok := any(zero).(T); !ok {
		var t T
		panic(fmt.Sprintf("dsl: %T does not implement %T", zero, &t))
	}
	return VariantOf(ad,
		func(v V) T { return any(v).(T) },
		func(t T) (V, bool) {
			v, ok := any(t).(V)
			return v, ok
		},
	)
}

// Union returns the adapter for a value holding one of several alternatives.
//
// With a live sample the schema is the active alternative's schema;
// otherwise it is a oneOf of all alternatives. Deserialization picks the
// first alternative whose schema accepts the input without issues.
func Union[T any](variants ...Variant[T]) Adapter[T] {
	return unionAdapter[T]{variants: append([]Variant[T](nil), variants...)}
}

type unionAdapter[T any] struct{ variants []Variant[T] }

func (u unionAdapter[T]) active(v *T) (Variant[T], bool) {
	for _, vr := range u.variants {
		if vr.match(v) {
			return vr, true
		}
	}
	return Variant[T]{}, false
}

func (u unionAdapter[T]) Schema(sample *T) js.Schema {
	if sample != nil {
		if vr, ok := u.active(sample); ok {
			return vr.schema(sample)
		}
	}
	s := js.Schema{OneOf: make([]js.Schema, 0, len(u.variants))}
	for _, vr := range u.variants {
		s.OneOf = append(s.OneOf, vr.schema(nil))
	}
	return s
}

func (u unionAdapter[T]) Serialize(v *T) (value.Value, error) {
	vr, ok := u.active(v)
	if !ok {
		return value.Value{}, jsonadapt.Root().Invalid(ErrNoVariant)
	}
	return vr.ser(v)
}

func (u unionAdapter[T]) Deserialize(j value.Value, dst *T) error {
	for _, vr := range u.variants {
		if jsonadapt.Conforms(j, vr.schema(nil)) {
			return vr.de(j, dst)
		}
	}
	it := jsonadapt.Root().Issue(jsonadapt.CodeOneOf, nil)
	it.Cause = ErrNoVariant
	return it
}
