package dsl

import (
	"fmt"
	"math"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Signed is the set of signed integer kinds accepted by Int.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer kinds accepted by Uint.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Floating is the set of floating point kinds accepted by Float.
type Floating interface {
	~float32 | ~float64
}

// typeIssue is the deserialization failure for a value of the wrong JSON type.
func typeIssue(want value.Type, got value.Value) error {
	return jsonadapt.Root().Issue(jsonadapt.CodeInvalidType, map[string]any{
		"expected": want.String(),
		"actual":   got.Type().String(),
	})
}

func rangeIssue(got value.Value, target string) error {
	return jsonadapt.Root().Invalid(fmt.Errorf("%s out of range for %s", got, target))
}

// Bool returns the adapter for bool.
func Bool() Adapter[bool] { return boolAdapter{} }

type boolAdapter struct{}

func (boolAdapter) Schema(*bool) js.Schema { return js.Of(value.TypeBoolean) }

func (boolAdapter) Serialize(v *bool) (value.Value, error) { return value.Bool(*v), nil }

func (boolAdapter) Deserialize(j value.Value, dst *bool) error {
	b, err := j.AsBool()
	if err != nil {
		return typeIssue(value.TypeBoolean, j)
	}
	*dst = b
	return nil
}

// String returns the adapter for string kinds.
func String[T ~string]() Adapter[T] { return stringAdapter[T]{} }

type stringAdapter[T ~string] struct{}

func (stringAdapter[T]) Schema(*T) js.Schema { return js.Of(value.TypeString) }

func (stringAdapter[T]) Serialize(v *T) (value.Value, error) { return value.String(string(*v)), nil }

func (stringAdapter[T]) Deserialize(j value.Value, dst *T) error {
	s, err := j.AsString()
	if err != nil {
		return typeIssue(value.TypeString, j)
	}
	*dst = T(s)
	return nil
}

// Int returns the adapter for signed integer kinds. Floats with an integral
// value are accepted; fractions and values outside T's range are not.
func Int[T Signed]() Adapter[T] { return intAdapter[T]{} }

type intAdapter[T Signed] struct{}

func (intAdapter[T]) Schema(*T) js.Schema { return js.Of(value.TypeInteger) }

func (intAdapter[T]) Serialize(v *T) (value.Value, error) { return value.Int(int64(*v)), nil }

func (intAdapter[T]) Deserialize(j value.Value, dst *T) error {
	i, err := integral(j)
	if err != nil {
		return err
	}
	t := T(i)
	if int64(t) != i {
		return rangeIssue(j, fmt.Sprintf("%T", t))
	}
	*dst = t
	return nil
}

func integral(j value.Value) (int64, error) {
	switch j.Kind() {
	case value.KindInt:
		i, _ := j.AsInt()
		return i, nil
	case value.KindFloat:
		f, _ := j.AsFloat()
		if !value.IsIntegral(f) {
			return 0, typeIssue(value.TypeInteger, j)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, rangeIssue(j, "int64")
		}
		return int64(f), nil
	default:
		return 0, typeIssue(value.TypeInteger, j)
	}
}

// Uint returns the adapter for unsigned integer kinds. The document model
// carries integers as int64, so values above math.MaxInt64 are refused in
// both directions and the schema of wide kinds states that maximum.
func Uint[T Unsigned]() Adapter[T] { return uintAdapter[T]{} }

type uintAdapter[T Unsigned] struct{}

func (uintAdapter[T]) Schema(*T) js.Schema {
	lo := 0.0
	s := js.Schema{Type: value.TypeInteger, Minimum: &lo}
	if uint64(^T(0)) > math.MaxInt64 {
		hi := float64(math.MaxInt64)
		s.Maximum = &hi
	}
	return s
}

func (uintAdapter[T]) Serialize(v *T) (value.Value, error) {
	u := uint64(*v)
	if u > math.MaxInt64 {
		return value.Value{}, jsonadapt.Root().Invalid(fmt.Errorf("%d out of range for int64", u))
	}
	return value.Int(int64(u)), nil
}

func (uintAdapter[T]) Deserialize(j value.Value, dst *T) error {
	i, err := integral(j)
	if err != nil {
		return err
	}
	if i < 0 {
		return rangeIssue(j, fmt.Sprintf("%T", *dst))
	}
	t := T(i)
	if uint64(t) != uint64(i) {
		return rangeIssue(j, fmt.Sprintf("%T", t))
	}
	*dst = t
	return nil
}

// Float returns the adapter for floating point kinds. Integers are widened.
func Float[T Floating]() Adapter[T] { return floatAdapter[T]{} }

type floatAdapter[T Floating] struct{}

func (floatAdapter[T]) Schema(*T) js.Schema { return js.Of(value.TypeNumber) }

func (floatAdapter[T]) Serialize(v *T) (value.Value, error) { return value.Float(float64(*v)), nil }

func (floatAdapter[T]) Deserialize(j value.Value, dst *T) error {
	f, err := j.AsFloat()
	if err != nil {
		return typeIssue(value.TypeNumber, j)
	}
	t := T(f)
	if math.IsInf(float64(t), 0) && !math.IsInf(f, 0) {
		return rangeIssue(j, fmt.Sprintf("%T", t))
	}
	*dst = t
	return nil
}
