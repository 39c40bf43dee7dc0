package dsl

import (
	"sort"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Map returns the adapter for string-keyed maps. Keys are serialized in
// sorted order so output is deterministic.
func Map[V any](elem Adapter[V]) Adapter[map[string]V] { return mapAdapter[V]{elem: elem} }

type mapAdapter[V any] struct{ elem Adapter[V] }

func (m mapAdapter[V]) Schema(*map[string]V) js.Schema { return js.MapOf(m.elem.Schema(nil)) }

func (m mapAdapter[V]) Serialize(v *map[string]V) (value.Value, error) {
	keys := make([]string, 0, len(*v))
	for k := range *v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := value.NewObject()
	var iss jsonadapt.Issues
	for _, k := range keys {
		ev := (*v)[k]
		jv, err := m.elem.Serialize(&ev)
		if err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Field(k), err)...)
			continue
		}
		obj.Set(k, jv)
	}
	return value.ObjectOf(obj), iss.Err()
}

func (m mapAdapter[V]) Deserialize(j value.Value, dst *map[string]V) error {
	obj, err := j.AsObject()
	if err != nil {
		return typeIssue(value.TypeObject, j)
	}
	out := make(map[string]V, obj.Len())
	var iss jsonadapt.Issues
	obj.Range(func(k string, jv value.Value) bool {
		var ev V
		if err := m.elem.Deserialize(jv, &ev); err != nil {
			iss = append(iss, jsonadapt.IssuesUnder(jsonadapt.Root().Field(k), err)...)
			return true
		}
		out[k] = ev
		return true
	})
	if len(iss) > 0 {
		return iss
	}
	*dst = out
	return nil
}
