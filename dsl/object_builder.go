package dsl

import (
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Field binds a property to a field of T reached through sel. sel must return
// a pointer into the instance it is given.
//
//	dsl.Field("x", func(p *Point) *float64 { return &p.X }, dsl.Float[float64](), dsl.Required())
func Field[T, F any](name string, sel func(*T) *F, ad Adapter[F], opts ...Option) ObjectProperty[T] {
	return ObjectProperty[T]{
		name:    name,
		options: NewPropertyOptions(opts...),
		schema: func(inst *T) js.Schema {
			return ad.Schema(sel(inst))
		},
		serialize: func(inst *T) (value.Value, error) {
			return ad.Serialize(sel(inst))
		},
		deserialize: func(j value.Value, inst *T) error {
			return ad.Deserialize(j, sel(inst))
		},
	}
}

// Accessor binds a property to a getter/setter pair, for state that is not a
// plain addressable field. set is only called when deserialization of the
// property succeeds.
func Accessor[T, F any](name string, get func(*T) F, set func(*T, F), ad Adapter[F], opts ...Option) ObjectProperty[T] {
	return ObjectProperty[T]{
		name:    name,
		options: NewPropertyOptions(opts...),
		schema: func(inst *T) js.Schema {
			f := get(inst)
			return ad.Schema(&f)
		},
		serialize: func(inst *T) (value.Value, error) {
			f := get(inst)
			return ad.Serialize(&f)
		},
		deserialize: func(j value.Value, inst *T) error {
			f := get(inst)
			if err := ad.Deserialize(j, &f); err != nil {
				return err
			}
			set(inst, f)
			return nil
		},
	}
}

// PropertyFuncs are hand-written property behaviours for Computed. A nil
// Serialize makes the property input-only (absent from output); a nil
// Deserialize ignores input. A nil Schema describes the property with the
// wildcard schema.
type PropertyFuncs[T any] struct {
	Schema      func(inst *T) js.Schema
	Serialize   func(inst *T) (value.Value, error)
	Deserialize func(j value.Value, inst *T) error
}

// Computed registers a property with custom behaviours.
func Computed[T any](name string, fns PropertyFuncs[T], opts ...Option) ObjectProperty[T] {
	p := ObjectProperty[T]{
		name:        name,
		options:     NewPropertyOptions(opts...),
		schema:      fns.Schema,
		serialize:   fns.Serialize,
		deserialize: fns.Deserialize,
	}
	if p.schema == nil {
		p.schema = func(*T) js.Schema { return js.Any() }
	}
	if p.serialize == nil {
		p.serialize = func(*T) (value.Value, error) { return value.Value{}, nil }
	}
	if p.deserialize == nil {
		p.deserialize = func(value.Value, *T) error { return nil }
	}
	return p
}
