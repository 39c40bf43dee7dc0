package value_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/jsonadapt/value"
)

func mustDecode(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.DecodeBytes([]byte(s))
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestDecode_Kinds(t *testing.T) {
	cases := []struct {
		in   string
		kind value.Kind
		typ  value.Type
	}{
		{`null`, value.KindNull, value.TypeNull},
		{`true`, value.KindBool, value.TypeBoolean},
		{`42`, value.KindInt, value.TypeInteger},
		{`-7`, value.KindInt, value.TypeInteger},
		{`1.5`, value.KindFloat, value.TypeNumber},
		{`1e3`, value.KindFloat, value.TypeNumber},
		{`92233720368547758070`, value.KindFloat, value.TypeNumber},
		{`"x"`, value.KindString, value.TypeString},
		{`[1,2]`, value.KindArray, value.TypeArray},
		{`{"a":1}`, value.KindObject, value.TypeObject},
	}
	for _, c := range cases {
		v := mustDecode(t, c.in)
		if v.Kind() != c.kind || v.Type() != c.typ {
			t.Fatalf("%s: got kind=%s type=%s", c.in, v.Kind(), v.Type())
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := value.DecodeBytes(nil); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("empty input: want ErrUnexpectedEOF, got %v", err)
	}
	if _, err := value.DecodeBytes([]byte(`1 2`)); !errors.Is(err, value.ErrTrailingData) {
		t.Fatalf("trailing: want ErrTrailingData, got %v", err)
	}
	if _, err := value.DecodeBytes([]byte(`{"a":`)); err == nil {
		t.Fatalf("truncated object should fail")
	}
}

func TestEncode_RoundTripKeepsOrder(t *testing.T) {
	in := `{"z":1,"a":[true,null,"s"],"m":{"y":2.5,"b":"q"}}`
	v := mustDecode(t, in)
	out, err := value.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != in {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", out, in)
	}
}

func TestEncode_SkipsEmptyMembers(t *testing.T) {
	o := value.NewObject()
	o.Set("a", value.Int(1))
	o.Set("gone", value.Value{})
	o.Set("b", value.Null())
	out, err := value.Encode(value.ObjectOf(o))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":1,"b":null}` {
		t.Fatalf("got %s", out)
	}
	top, _ := value.Encode(value.Value{})
	if string(top) != "null" {
		t.Fatalf("empty top level should render null, got %s", top)
	}
}

func TestEncode_Floats(t *testing.T) {
	cases := map[float64]string{
		1.5:     "1.5",
		2:       "2",
		0:       "0",
		1e21:    "1e+21",
		1e-7:    "1e-07",
		123.456: "123.456",
	}
	for f, want := range cases {
		got, err := value.Encode(value.Float(f))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Fatalf("%v: got %s want %s", f, got, want)
		}
	}
	if _, err := value.Encode(value.Float(math.NaN())); !errors.Is(err, value.ErrUnsupportedNumber) {
		t.Fatalf("NaN: want ErrUnsupportedNumber, got %v", err)
	}
	if _, err := value.Encode(value.Array(value.Float(math.Inf(1)))); !errors.Is(err, value.ErrUnsupportedNumber) {
		t.Fatalf("nested Inf: want ErrUnsupportedNumber, got %v", err)
	}
}

func TestEncode_StringEscapes(t *testing.T) {
	got, err := value.Encode(value.String("a\"b\n<c>"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `"a\"b\n<c>"` {
		t.Fatalf("got %s", got)
	}
	o := value.NewObject()
	o.Set("a<b", value.String("x & y > 0"))
	got, err = value.Encode(value.ObjectOf(o))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a<b":"x & y > 0"}` {
		t.Fatalf("got %s", got)
	}
}

func TestEqual(t *testing.T) {
	a := mustDecode(t, `{"x":1,"y":[1,2]}`)
	b := mustDecode(t, `{"y":[1.0,2],"x":1.0}`)
	if !value.Equal(a, b) {
		t.Fatalf("expected numeric and order-insensitive equality")
	}
	if value.Equal(value.String("1"), value.Int(1)) {
		t.Fatalf("string and int must differ")
	}
	if value.Equal(value.Null(), value.Value{}) {
		t.Fatalf("null and empty must differ")
	}
}

func TestAsAccessors(t *testing.T) {
	f, err := value.Int(3).AsFloat()
	if err != nil || f != 3 {
		t.Fatalf("int should widen to float: %v %v", f, err)
	}
	if _, err := value.Float(3).AsInt(); !errors.Is(err, value.ErrTypeMismatch) {
		t.Fatalf("float must not narrow: %v", err)
	}
	if _, err := value.String("x").AsObject(); !errors.Is(err, value.ErrTypeMismatch) {
		t.Fatalf("want mismatch, got %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	v := mustDecode(t, `{"a":{"b":1}}`)
	c := v.Clone()
	obj, _ := c.AsObject()
	inner, _ := obj.Get("a")
	innerObj, _ := inner.AsObject()
	innerObj.Set("b", value.Int(2))
	if v.String() != `{"a":{"b":1}}` {
		t.Fatalf("clone mutated original: %s", v)
	}
}

func TestObject_SetKeepsPosition(t *testing.T) {
	o := value.NewObject()
	o.Set("a", value.Int(1))
	o.Set("b", value.Int(2))
	o.Set("a", value.Int(3))
	if diff := cmp.Diff([]string{"a", "b"}, o.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if !o.Delete("a") || o.Has("a") || o.Len() != 1 {
		t.Fatalf("delete failed")
	}
}

func TestFromYAML(t *testing.T) {
	v, err := value.FromYAML([]byte("name: x\ncount: 3\nratio: 0.5\ntags: [a, b]\nbase: &b {k: 1}\nref: *b\nnone: ~\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"x","count":3,"ratio":0.5,"tags":["a","b"],"base":{"k":1},"ref":{"k":1},"none":null}`
	if v.String() != want {
		t.Fatalf("got %s", v)
	}
	if _, err := value.FromYAML([]byte("? [a]\n: 1\n")); err == nil {
		t.Fatalf("non-scalar key should fail")
	}
}

func TestEncodeYAML_KeepsOrder(t *testing.T) {
	v := mustDecode(t, `{"b":1,"a":"x"}`)
	out, err := value.EncodeYAML(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "b: 1\na: x\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFromAnyAndBack(t *testing.T) {
	in := map[string]any{"b": []any{int64(1), "s", nil}, "a": true, "f": 1.25}
	v, err := value.FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != `{"a":true,"b":[1,"s",null],"f":1.25}` {
		t.Fatalf("got %s", v)
	}
	if diff := cmp.Diff(in, v.Any()); diff != "" {
		t.Fatalf("Any (-want +got):\n%s", diff)
	}
	if _, err := value.FromAny(struct{}{}); err == nil {
		t.Fatalf("struct should be rejected")
	}
}
