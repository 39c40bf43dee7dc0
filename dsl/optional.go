package dsl

import (
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Optional returns the adapter for *T. A nil pointer serializes to the
// absent value, so the owning object omits the key; null deserializes to nil
// and an absent value leaves the destination untouched.
func Optional[T any](inner Adapter[T]) Adapter[*T] { return optionalAdapter[T]{inner: inner} }

type optionalAdapter[T any] struct{ inner Adapter[T] }

func (o optionalAdapter[T]) Schema(sample **T) js.Schema {
	if sample != nil && *sample != nil {
		return o.inner.Schema(*sample)
	}
	return o.inner.Schema(nil)
}

func (o optionalAdapter[T]) Serialize(v **T) (value.Value, error) {
	if *v == nil {
		return value.Value{}, nil
	}
	return o.inner.Serialize(*v)
}

func (o optionalAdapter[T]) Deserialize(j value.Value, dst **T) error {
	switch {
	case j.IsEmpty():
		return nil
	case j.IsNull():
		*dst = nil
		return nil
	}
	var t T
	if *dst != nil {
		t = **dst
	}
	if err := o.inner.Deserialize(j, &t); err != nil {
		return err
	}
	*dst = &t
	return nil
}

// Raw returns the pass-through adapter for value.Value, described by the
// wildcard schema.
func Raw() Adapter[value.Value] { return rawAdapter{} }

type rawAdapter struct{}

func (rawAdapter) Schema(*value.Value) js.Schema { return js.Any() }

func (rawAdapter) Serialize(v *value.Value) (value.Value, error) { return v.Clone(), nil }

func (rawAdapter) Deserialize(j value.Value, dst *value.Value) error {
	*dst = j.Clone()
	return nil
}
