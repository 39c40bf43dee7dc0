package dsl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	jsonadapt "github.com/reoring/jsonadapt"
	g "github.com/reoring/jsonadapt/dsl"
	"github.com/reoring/jsonadapt/value"
)

type shape interface{ area() float64 }

type circle struct{ R float64 }

type square struct{ Side float64 }

func (c circle) area() float64 { return 3 * c.R * c.R }
func (s square) area() float64 { return s.Side * s.Side }

var circleAdapter = g.Object[circle]("Circle",
	g.Field("r", func(c *circle) *float64 { return &c.R }, g.Float[float64](), g.Required(), g.Minimum(0)),
)

var squareAdapter = g.Object[square]("Square",
	g.Field("side", func(s *square) *float64 { return &s.Side }, g.Float[float64](), g.Required()),
)

var shapeAdapter = g.Union(g.Case[shape, circle](circleAdapter), g.Case[shape, square](squareAdapter))

func TestUnion_RoundTrip(t *testing.T) {
	roundTrip[shape](t, shapeAdapter, circle{R: 2}, `{"r":2}`)
	roundTrip[shape](t, shapeAdapter, square{Side: 1.5}, `{"side":1.5}`)
	roundTrip(t, g.Array(shapeAdapter), []shape{square{Side: 1}, circle{R: 1}}, `[{"side":1},{"r":1}]`)
}

func TestUnion_SchemaFollowsSample(t *testing.T) {
	all := shapeAdapter.Schema(nil)
	if !all.IsOneOf() || len(all.OneOf) != 2 {
		t.Fatalf("expected oneOf of both shapes: %+v", all)
	}
	var s shape = square{Side: 2}
	one := shapeAdapter.Schema(&s)
	if one.IsOneOf() || one.Title != "Square" {
		t.Fatalf("expected the square schema, got %+v", one)
	}
	var none shape
	if got := shapeAdapter.Schema(&none); !got.IsOneOf() {
		t.Fatalf("nil interface should describe every alternative: %+v", got)
	}
}

func TestUnion_NoMatch(t *testing.T) {
	var s shape = circle{R: 1}
	err := shapeAdapter.Deserialize(mustParse(t, `{"r":1,"side":2}`), &s)
	if !errors.Is(err, g.ErrNoVariant) {
		t.Fatalf("expected ErrNoVariant, got %v", err)
	}
	if it := firstIssue(t, err); it.Code != jsonadapt.CodeOneOf {
		t.Fatalf("got %v", it)
	}
	if s != (circle{R: 1}) {
		t.Fatalf("destination changed to %v", s)
	}

	var empty shape
	if _, err := shapeAdapter.Serialize(&empty); !errors.Is(err, g.ErrNoVariant) {
		t.Fatalf("nil interface: %v", err)
	}
}

func TestUnion_ValidatesAgainstFirstMatchingVariant(t *testing.T) {
	// a negative radius fails the circle schema, so nothing matches
	if err := shapeAdapter.Deserialize(mustParse(t, `{"r":-1}`), new(shape)); err == nil {
		t.Fatal("expected failure")
	}
}

// token is a tagged struct: exactly one of the payloads is set.
type token struct {
	Num *int64
	Str *string
}

var tokenAdapter = g.Union(
	g.VariantOf(g.Int[int64](),
		func(n int64) token { return token{Num: &n} },
		func(t token) (int64, bool) {
			if t.Num == nil {
				return 0, false
			}
			return *t.Num, true
		}),
	g.VariantOf(g.String[string](),
		func(s string) token { return token{Str: &s} },
		func(t token) (string, bool) {
			if t.Str == nil {
				return "", false
			}
			return *t.Str, true
		}),
)

func TestUnion_TaggedStruct(t *testing.T) {
	n := int64(4)
	roundTrip(t, tokenAdapter, token{Num: &n}, `4`)
	s := "four"
	roundTrip(t, tokenAdapter, token{Str: &s}, `"four"`)

	var got token
	if err := tokenAdapter.Deserialize(value.Bool(true), &got); err == nil {
		t.Fatal("bool matches neither variant")
	}
	want := `{"oneOf":[{"type":"integer"},{"type":"string"}]}`
	if diff := cmp.Diff(want, tokenAdapter.Schema(nil).ToValue().String()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCase_PanicsOnNonImplementer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	g.Case[shape, token](tokenAdapter)
}
