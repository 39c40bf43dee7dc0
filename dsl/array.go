package dsl

import (
	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Array returns the adapter for []E. Deserialization is all-or-nothing: the
// destination is only replaced when every element decodes.
func Array[E any](elem Adapter[E]) Adapter[[]E] { return arrayAdapter[E]{elem: elem} }

type arrayAdapter[E any] struct{ elem Adapter[E] }

func (a arrayAdapter[E]) Schema(*[]E) js.Schema { return js.ArrayOf(a.elem.Schema(nil)) }

func (a arrayAdapter[E]) Serialize(v *[]E) (value.Value, error) {
	out := make([]value.Value, 0, len(*v))
	var iss jsonadapt.Issues
	for i := range *v {
		ev, err := a.elem.Serialize(&(*v)[i])
		if err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Index(i), err)...)
		}
		out = append(out, ev)
	}
	return value.Array(out...), iss.Err()
}

func (a arrayAdapter[E]) Deserialize(j value.Value, dst *[]E) error {
	arr, err := j.AsArray()
	if err != nil {
		return typeIssue(value.TypeArray, j)
	}
	out := make([]E, len(arr))
	var iss jsonadapt.Issues
	for i := range arr {
		if err := a.elem.Deserialize(arr[i], &out[i]); err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Index(i), err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	*dst = out
	return nil
}
