package dsl

import (
	"fmt"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// ObjectProperty is one registered property of a composite type T: a name,
// its options, and the three behaviours bound to a field of T.
type ObjectProperty[T any] struct {
	name        string
	options     PropertyOptions
	schema      func(inst *T) js.Schema
	serialize   func(inst *T) (value.Value, error)
	deserialize func(j value.Value, inst *T) error
}

func (p ObjectProperty[T]) Name() string { return p.name }

func (p ObjectProperty[T]) Options() PropertyOptions { return p.options }

// ObjectInfo is the property table of a composite type. It is immutable once
// built and implements Adapter[T], so it can be nested inside other
// adapters.
type ObjectInfo[T any] struct {
	title string
	props []ObjectProperty[T]
}

// Object builds the property table for T. Properties keep the given order
// in schemas and output. It panics on duplicate or empty property names.
func Object[T any](title string, props ...ObjectProperty[T]) *ObjectInfo[T] {
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if p.name == "" {
			panic(fmt.Sprintf("dsl: %s: empty property name", title))
		}
		if _, dup := seen[p.name]; dup {
			panic(fmt.Sprintf("dsl: %s: duplicate property %q", title, p.name))
		}
		seen[p.name] = struct{}{}
	}
	return &ObjectInfo[T]{title: title, props: append([]ObjectProperty[T](nil), props...)}
}

func (o *ObjectInfo[T]) Title() string { return o.title }

// Properties returns a copy of the property table.
func (o *ObjectInfo[T]) Properties() []ObjectProperty[T] {
	return append([]ObjectProperty[T](nil), o.props...)
}

// Schema describes T. Each property's computed schema is overlaid with its
// options; Required options populate the required list.
func (o *ObjectInfo[T]) Schema(sample *T) js.Schema {
	if sample == nil {
		sample = new(T)
	}
	s := js.Schema{Title: o.title, Type: value.TypeObject, Properties: js.NewProperties()}
	for _, p := range o.props {
		ps := p.schema(sample)
		p.options.Apply(&ps)
		s.SetProperty(p.name, ps)
		if p.options.Required {
			s.AddRequired(p.name)
		}
	}
	return s
}

// Serialize emits every property that is not write-only. Absent results
// (nil optionals) are omitted. Failing properties are omitted too and
// reported as Issues below their name; the partial object is still returned.
func (o *ObjectInfo[T]) Serialize(v *T) (value.Value, error) {
	out := value.NewObject()
	var iss jsonadapt.Issues
	for _, p := range o.props {
		if p.options.WriteOnly {
			continue
		}
		j, err := p.serialize(v)
		if err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Field(p.name), err)...)
			continue
		}
		if j.IsEmpty() {
			continue
		}
		out.Set(p.name, j)
	}
	return value.ObjectOf(out), iss.Err()
}

// Deserialize reads every property that is not read-only from the object j.
// An absent property takes its default when one is registered and is
// otherwise left untouched. Failures are collected as Issues below the
// property name; the remaining properties are still read.
func (o *ObjectInfo[T]) Deserialize(j value.Value, dst *T) error {
	obj, err := j.AsObject()
	if err != nil {
		return typeIssue(value.TypeObject, j)
	}
	var iss jsonadapt.Issues
	for _, p := range o.props {
		if p.options.ReadOnly {
			continue
		}
		pv, ok := obj.Get(p.name)
		if !ok || pv.IsEmpty() {
			if p.options.Default == nil {
				continue
			}
			pv = p.options.Default.Clone()
		}
		if err := p.deserialize(pv, dst); err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Field(p.name), err)...)
		}
	}
	return iss.Err()
}
