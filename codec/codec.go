// Package codec provides adapters for Go types that travel as JSON strings:
// timestamps, durations and anything with a text form.
package codec

import (
	"encoding"
	"time"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

func stringSchema(desc string) js.Schema {
	s := js.Of(value.TypeString)
	s.Description = desc
	return s
}

func readString(j value.Value) (string, error) {
	s, err := j.AsString()
	if err != nil {
		return "", jsonadapt.Root().Issue(jsonadapt.CodeInvalidType, map[string]any{
			"expected": value.TypeString.String(),
			"actual":   j.Type().String(),
		})
	}
	return s, nil
}

// Time returns the adapter for time.Time as an RFC 3339 string. Values are
// written in UTC with trailing zero fractions trimmed.
func Time() jsonadapt.Adapter[time.Time] { return timeAdapter{} }

type timeAdapter struct{}

func (timeAdapter) Schema(*time.Time) js.Schema { return stringSchema("RFC 3339 date-time") }

func (timeAdapter) Serialize(v *time.Time) (value.Value, error) {
	return value.String(v.UTC().Format(time.RFC3339Nano)), nil
}

func (timeAdapter) Deserialize(j value.Value, dst *time.Time) error {
	s, err := readString(j)
	if err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return jsonadapt.Root().Invalid(err)
	}
	*dst = t
	return nil
}

// Duration returns the adapter for time.Duration in time.ParseDuration form
// ("1m30s").
func Duration() jsonadapt.Adapter[time.Duration] { return durationAdapter{} }

type durationAdapter struct{}

func (durationAdapter) Schema(*time.Duration) js.Schema { return stringSchema("duration") }

func (durationAdapter) Serialize(v *time.Duration) (value.Value, error) {
	return value.String(v.String()), nil
}

func (durationAdapter) Deserialize(j value.Value, dst *time.Duration) error {
	s, err := readString(j)
	if err != nil {
		return err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return jsonadapt.Root().Invalid(err)
	}
	*dst = d
	return nil
}

// TextType is satisfied by *T when T marshals to and from text.
type TextType[T any] interface {
	*T
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// Text returns an adapter that carries T through its text form, for
// example netip.Addr or big.Int.
func Text[T any, PT TextType[T]]() jsonadapt.Adapter[T] { return textAdapter[T, PT]{} }

type textAdapter[T any, PT TextType[T]] struct{}

func (textAdapter[T, PT]) Schema(*T) js.Schema { return stringSchema("") }

func (textAdapter[T, PT]) Serialize(v *T) (value.Value, error) {
	b, err := PT(v).MarshalText()
	if err != nil {
		return value.Value{}, jsonadapt.Root().Invalid(err)
	}
	return value.String(string(b)), nil
}

func (textAdapter[T, PT]) Deserialize(j value.Value, dst *T) error {
	s, err := readString(j)
	if err != nil {
		return err
	}
	var t T
	if err := PT(&t).UnmarshalText([]byte(s)); err != nil {
		return jsonadapt.Root().Invalid(err)
	}
	*dst = t
	return nil
}
