package dsl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	jsonadapt "github.com/reoring/jsonadapt"
	g "github.com/reoring/jsonadapt/dsl"
	"github.com/reoring/jsonadapt/value"
)

func TestArray_RoundTrip(t *testing.T) {
	roundTrip(t, g.Array(g.Int[int]()), []int{1, 2, 3}, `[1,2,3]`)
	roundTrip(t, g.Array(g.Array(g.String[string]())), [][]string{{"a"}, {}}, `[["a"],[]]`, cmpEmpty)
	roundTrip(t, g.Array(g.Bool()), nil, `[]`, cmpEmpty)
}

func TestArray_FailsWholesale(t *testing.T) {
	dst := []int{9}
	err := g.Array(g.Int[int]()).Deserialize(mustParse(t, `[1,"x",3,true]`), &dst)
	iss, ok := jsonadapt.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", err)
	}
	if iss[0].Path != "[1]" || iss[1].Path != "[3]" {
		t.Fatalf("paths: %q %q", iss[0].Path, iss[1].Path)
	}
	if diff := cmp.Diff([]int{9}, dst); diff != "" {
		t.Fatalf("destination changed (-want +got):\n%s", diff)
	}
}

func TestMap_RoundTripSortsKeys(t *testing.T) {
	roundTrip(t, g.Map(g.Int[int]()), map[string]int{"b": 2, "a": 1, "c": 3}, `{"a":1,"b":2,"c":3}`)
	roundTrip(t, g.Map(g.Array(g.Int[int]())), map[string][]int{}, `{}`, cmpEmpty)
}

func TestMap_Schema(t *testing.T) {
	s := g.Map(g.String[string]()).Schema(nil)
	if !s.IsMap() || s.IsArray() {
		t.Fatalf("expected map schema: %+v", s)
	}
	if got := s.ToValue().String(); got != `{"type":"object","items":{"type":"string"}}` {
		t.Fatalf("got %s", got)
	}
}

func TestMap_IssuePaths(t *testing.T) {
	var m map[string]float64
	err := g.Map(g.Float[float64]()).Deserialize(mustParse(t, `{"ok":1.5,"bad":"x"}`), &m)
	if it := firstIssue(t, err); it.Path != "bad" || it.Code != jsonadapt.CodeInvalidType {
		t.Fatalf("got %v", it)
	}
	if m != nil {
		t.Fatalf("destination should stay nil, got %v", m)
	}
	if err := g.Map(g.Float[float64]()).Deserialize(mustParse(t, `[]`), &m); err == nil {
		t.Fatal("array is not a map")
	}
}

func TestOptional(t *testing.T) {
	opt := g.Optional(g.Int[int]())
	var p *int
	j, err := opt.Serialize(&p)
	if err != nil || !j.IsEmpty() {
		t.Fatalf("nil pointer should serialize to the absent value, got %v err=%v", j, err)
	}

	n := 5
	p = &n
	if j, _ := opt.Serialize(&p); j.String() != "5" {
		t.Fatalf("got %s", j)
	}

	// absent keeps, null clears, a value replaces
	if err := opt.Deserialize(value.Value{}, &p); err != nil || p == nil || *p != 5 {
		t.Fatalf("absent: %v %v", p, err)
	}
	if err := opt.Deserialize(value.Int(6), &p); err != nil || *p != 6 {
		t.Fatalf("value: %v %v", p, err)
	}
	if n != 5 {
		t.Fatalf("deserialize must not write through the old pointer, n=%d", n)
	}
	if err := opt.Deserialize(value.Null(), &p); err != nil || p != nil {
		t.Fatalf("null: %v %v", p, err)
	}
	if err := opt.Deserialize(value.String("x"), &p); err == nil {
		t.Fatal("expected type error")
	}
}

func TestRaw(t *testing.T) {
	in := mustParse(t, `{"z":[1,{"k":null}],"a":"s"}`)
	roundTrip(t, g.Raw(), in, `{"z":[1,{"k":null}],"a":"s"}`, cmp.Comparer(value.Equal))
	s := g.Raw().Schema(nil)
	if !s.IsWildcard() {
		t.Fatalf("raw schema should be the wildcard: %+v", s)
	}
}
