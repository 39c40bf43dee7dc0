package jsonadapt_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

func mustParse(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := jsonadapt.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func messages(iss jsonadapt.Issues) []string { return iss.Messages() }

func ptr[T any](v T) *T { return &v }

func TestValidate_NumericWidening(t *testing.T) {
	if iss := jsonadapt.Validate(value.Int(3), js.Of(value.TypeNumber)); len(iss) != 0 {
		t.Fatalf("int against number: %v", iss)
	}
	if iss := jsonadapt.Validate(value.Int(3), js.Of(value.TypeInteger)); len(iss) != 0 {
		t.Fatalf("int against integer: %v", iss)
	}
	iss := jsonadapt.Validate(value.Float(3.5), js.Of(value.TypeInteger))
	if len(iss) != 1 || iss[0].Code != jsonadapt.CodeInvalidType {
		t.Fatalf("float against integer: %v", iss)
	}
	if iss[0].Message != "invalid type, expected integer got number" {
		t.Fatalf("message: %q", iss[0].Message)
	}
}

func TestValidate_LimitsAreIndependent(t *testing.T) {
	s := js.Schema{Type: value.TypeNumber, Minimum: ptr(-1.0), Maximum: ptr(3.0)}
	cases := []struct {
		in   value.Value
		want []string
	}{
		{value.Int(-2), []string{"value below minimum -2 < -1"}},
		{value.Int(4), []string{"value above maximum 4 > 3"}},
		{value.Int(1), nil},
		{value.Float(3.5), []string{"value above maximum 3.5 > 3"}},
	}
	for _, c := range cases {
		got := messages(jsonadapt.Validate(c.in, s))
		if diff := cmp.Diff(c.want, got, cmpEmpty); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", c.in, diff)
		}
	}
	// inverted bounds fire both checks
	both := js.Schema{Type: value.TypeInteger, Minimum: ptr(5.0), Maximum: ptr(1.0)}
	if iss := jsonadapt.Validate(value.Int(3), both); len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", iss)
	}
}

func TestValidate_EnumMembership(t *testing.T) {
	s := js.Schema{Type: value.TypeString, Enums: []string{"test1", "test2"}}
	if iss := jsonadapt.Validate(value.String("test1"), s); len(iss) != 0 {
		t.Fatalf("member rejected: %v", iss)
	}
	got := messages(jsonadapt.Validate(value.String("Test2"), s))
	want := []string{"invalid enum 'Test2' not in ['test1', 'test2']"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	s := js.Schema{Type: value.TypeObject}
	s.SetProperty("integer", js.Of(value.TypeInteger))
	s.SetProperty("string", js.Of(value.TypeString))
	s.AddRequired("integer")

	got := messages(jsonadapt.Validate(mustParse(t, `{"string":"test"}`), s))
	if diff := cmp.Diff([]string{"missing required property 'integer'"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if iss := jsonadapt.Validate(mustParse(t, `{"integer":1}`), s); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestValidate_UnknownVersusReadOnly(t *testing.T) {
	s := js.Schema{Type: value.TypeObject}
	s.SetProperty("readOnly", js.Schema{Type: value.TypeInteger, ReadOnly: true})
	s.AddRequired("readOnly")

	cases := map[string][]string{
		`{"something":1}`: {"unknown property 'something'"},
		`{"readOnly":1}`:  {"read only property 'readOnly'"},
		`{}`:              nil,
	}
	for in, want := range cases {
		got := messages(jsonadapt.Validate(mustParse(t, in), s))
		if diff := cmp.Diff(want, got, cmpEmpty); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", in, diff)
		}
	}
}

func TestValidate_NestedPaths(t *testing.T) {
	inner := js.Schema{Type: value.TypeObject}
	inner.SetProperty("items", js.ArrayOf(js.Of(value.TypeInteger)))
	outer := js.Schema{Type: value.TypeObject}
	outer.SetProperty("inner", inner)
	outer.SetProperty("name", js.Of(value.TypeString))
	outer.AddRequired("name")

	iss := jsonadapt.Validate(mustParse(t, `{"inner":{"items":[1.3]}}`), outer)
	type row struct{ Path, Code string }
	got := make([]row, len(iss))
	for i, it := range iss {
		got[i] = row{it.Path, it.Code}
	}
	want := []row{
		{"inner.items[0]", jsonadapt.CodeInvalidType},
		{"", jsonadapt.CodeRequired},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestValidate_OneOf(t *testing.T) {
	s := js.Schema{OneOf: []js.Schema{js.Of(value.TypeNumber), js.Of(value.TypeString)}}
	for _, in := range []string{`1.0`, `"test"`} {
		if iss := jsonadapt.Validate(mustParse(t, in), s); len(iss) != 0 {
			t.Fatalf("%s: %v", in, iss)
		}
	}
	got := messages(jsonadapt.Validate(value.Bool(true), s))
	if diff := cmp.Diff([]string{"invalid oneOf, no schemas match input"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestValidate_Wildcard(t *testing.T) {
	for _, in := range []string{`1`, `{"test":10}`, `[1,"a",null]`, `null`} {
		if iss := jsonadapt.Validate(mustParse(t, in), js.Any()); len(iss) != 0 {
			t.Fatalf("%s: %v", in, iss)
		}
	}
}

func TestValidate_TypeMismatchStopsDescent(t *testing.T) {
	s := js.Schema{Type: value.TypeObject}
	s.SetProperty("a", js.Of(value.TypeInteger))
	s.AddRequired("a")
	iss := jsonadapt.Validate(mustParse(t, `[{"b":1}]`), s)
	if len(iss) != 1 || iss[0].Code != jsonadapt.CodeInvalidType {
		t.Fatalf("expected only the type issue, got %v", iss)
	}
}

func TestValidate_DefaultSubstitution(t *testing.T) {
	s := js.Schema{Type: value.TypeInteger, Default: ptr(value.Int(1))}
	if iss := jsonadapt.Validate(value.Value{}, s); len(iss) != 0 {
		t.Fatalf("absent value should validate as its default: %v", iss)
	}
	bad := js.Schema{Type: value.TypeInteger, Default: ptr(value.String("x"))}
	if iss := jsonadapt.Validate(value.Value{}, bad); len(iss) != 1 {
		t.Fatalf("bad default should fail, got %v", iss)
	}
	if iss := jsonadapt.Validate(value.Value{}, js.Of(value.TypeString)); len(iss) != 1 {
		t.Fatalf("absent value without default should fail, got %v", iss)
	}
}

func TestValidate_MapAndAdditionalProperties(t *testing.T) {
	m := js.MapOf(js.Of(value.TypeInteger))
	iss := jsonadapt.Validate(mustParse(t, `{"a":1,"b":"x"}`), m)
	if len(iss) != 1 || iss[0].Path != "b" {
		t.Fatalf("map value issue: %v", iss)
	}

	open := js.Schema{Type: value.TypeObject, AdditionalProperties: []js.Schema{js.Of(value.TypeString)}}
	open.SetProperty("id", js.Of(value.TypeInteger))
	iss = jsonadapt.Validate(mustParse(t, `{"id":1,"x":"ok","y":2}`), open)
	if len(iss) != 1 || iss[0].Path != "y" || iss[0].Code != jsonadapt.CodeInvalidType {
		t.Fatalf("additional property issue: %v", iss)
	}
}

func TestValidate_ArrayCounts(t *testing.T) {
	s := js.Schema{Type: value.TypeArray, Items: []js.Schema{js.Of(value.TypeInteger)}, MinItems: ptr(2), MaxItems: ptr(3)}
	got := messages(jsonadapt.Validate(mustParse(t, `["x"]`), s))
	want := []string{"invalid type, expected integer got string", "not enough items 1 < 2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	got = messages(jsonadapt.Validate(mustParse(t, `[1,2,3,4]`), s))
	if diff := cmp.Diff([]string{"too many items 4 > 3"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	// no items: counts only
	noItems := js.Schema{Type: value.TypeArray, MaxItems: ptr(1)}
	if iss := jsonadapt.Validate(mustParse(t, `["a",{}]`), noItems); len(iss) != 1 {
		t.Fatalf("expected count issue only, got %v", iss)
	}
}
