package dsl_test

import (
	"errors"
	"testing"

	jsonadapt "github.com/reoring/jsonadapt"
	g "github.com/reoring/jsonadapt/dsl"
	"github.com/reoring/jsonadapt/value"
)

type color int

const (
	red color = iota
	green
	blue
)

var colorAdapter = g.Enum(
	g.EnumValue("red", red),
	g.EnumValue("green", green),
)

func TestEnum_RoundTrip(t *testing.T) {
	roundTrip(t, colorAdapter, green, `"green"`)
	roundTrip(t, g.Array(colorAdapter), []color{red, green, red}, `["red","green","red"]`)
}

func TestEnum_Schema(t *testing.T) {
	got := colorAdapter.Schema(nil).ToValue().String()
	if want := `{"type":"string","enum":["red","green"]}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestEnum_UnknownName(t *testing.T) {
	c := blue
	err := colorAdapter.Deserialize(value.String("Red"), &c)
	if !errors.Is(err, g.ErrUnknownEnum) {
		t.Fatalf("expected ErrUnknownEnum, got %v", err)
	}
	it := firstIssue(t, err)
	if it.Code != jsonadapt.CodeInvalidEnum || it.Message != "invalid enum 'Red' not in ['red', 'green']" {
		t.Fatalf("got %v", it)
	}
	if c != blue {
		t.Fatalf("destination changed to %v", c)
	}
	if err := colorAdapter.Deserialize(value.Int(0), &c); errors.Is(err, g.ErrUnknownEnum) || err == nil {
		t.Fatalf("a number is a type error, got %v", err)
	}
}

func TestEnum_UnregisteredValue(t *testing.T) {
	c := blue
	_, err := colorAdapter.Serialize(&c)
	if !errors.Is(err, g.ErrUnknownEnum) {
		t.Fatalf("expected ErrUnknownEnum, got %v", err)
	}
}

func TestEnum_DuplicatesPanic(t *testing.T) {
	for name, build := range map[string]func(){
		"name":  func() { g.Enum(g.EnumValue("a", red), g.EnumValue("a", green)) },
		"value": func() { g.Enum(g.EnumValue("a", red), g.EnumValue("b", red)) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", name)
				}
			}()
			build()
		}()
	}
}
