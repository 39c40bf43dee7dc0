package dsl

import (
	"fmt"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Adapter is a shorthand for jsonadapt.Adapter.
type Adapter[T any] = jsonadapt.Adapter[T]

// PropertyOptions is the per-property metadata attached at registration.
// Nil pointers and false flags mean "not set".
type PropertyOptions struct {
	Title       *string
	Description *string
	Required    bool
	ReadOnly    bool
	WriteOnly   bool
	Minimum     *float64
	Maximum     *float64
	MinItems    *int
	MaxItems    *int
	Default     *value.Value
}

// Option modifies PropertyOptions. Options are applied in the order given.
type Option interface {
	apply(*PropertyOptions)
}

// OptionFunc adapts a function to Option.
type OptionFunc func(*PropertyOptions)

func (f OptionFunc) apply(o *PropertyOptions) { f(o) }

// NewPropertyOptions folds opts onto the zero PropertyOptions. A default value
// always clears Required, whatever the order of the options.
func NewPropertyOptions(opts ...Option) PropertyOptions {
	var o PropertyOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	if o.Default != nil {
		o.Required = false
	}
	return o
}

// Apply overrides the fields of s that the options set explicitly.
func (o PropertyOptions) Apply(s *js.Schema) {
	if o.Title != nil {
		s.Title = *o.Title
	}
	if o.Description != nil {
		s.Description = *o.Description
	}
	if o.ReadOnly {
		s.ReadOnly = true
	}
	if o.WriteOnly {
		s.WriteOnly = true
	}
	if o.Minimum != nil {
		m := *o.Minimum
		s.Minimum = &m
	}
	if o.Maximum != nil {
		m := *o.Maximum
		s.Maximum = &m
	}
	if o.MinItems != nil {
		n := *o.MinItems
		s.MinItems = &n
	}
	if o.MaxItems != nil {
		n := *o.MaxItems
		s.MaxItems = &n
	}
	if o.Default != nil {
		d := o.Default.Clone()
		s.Default = &d
	}
}

func Title(s string) Option { return OptionFunc(func(o *PropertyOptions) { o.Title = &s }) }

func Description(s string) Option {
	return OptionFunc(func(o *PropertyOptions) { o.Description = &s })
}

// Required marks the property as required in the generated schema. It has no
// effect when a default is also given.
func Required() Option { return OptionFunc(func(o *PropertyOptions) { o.Required = true }) }

// ReadOnly properties are serialized but never read from input.
func ReadOnly() Option { return OptionFunc(func(o *PropertyOptions) { o.ReadOnly = true }) }

// WriteOnly properties are read from input but never serialized.
func WriteOnly() Option { return OptionFunc(func(o *PropertyOptions) { o.WriteOnly = true }) }

func Minimum(f float64) Option { return OptionFunc(func(o *PropertyOptions) { o.Minimum = &f }) }

func Maximum(f float64) Option { return OptionFunc(func(o *PropertyOptions) { o.Maximum = &f }) }

func MinItems(n int) Option { return OptionFunc(func(o *PropertyOptions) { o.MinItems = &n }) }

func MaxItems(n int) Option { return OptionFunc(func(o *PropertyOptions) { o.MaxItems = &n }) }

// Default sets the value substituted when the property is absent from input.
func Default(v value.Value) Option {
	v = v.Clone()
	return OptionFunc(func(o *PropertyOptions) {
		d := v.Clone()
		o.Default = &d
	})
}

// DefaultOf serializes v with ad and uses the result as the default. It panics
// when v cannot be serialized, as registration happens at start-up.
func DefaultOf[F any](ad Adapter[F], v F) Option {
	j, err := ad.Serialize(&v)
	if err != nil {
		panic(fmt.Sprintf("dsl: default value does not serialize: %v", err))
	}
	return Default(j)
}
