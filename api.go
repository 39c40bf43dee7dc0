package jsonadapt

import (
	"fmt"

	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// Adapter maps a native type T to and from value.Value and describes the
// accepted shape as a Schema.
//
// Implementations must be safe for concurrent use once constructed; the
// built-in adapters in dsl never mutate themselves after construction.
type Adapter[T any] interface {
	// Schema describes T. sample may be nil; adapters whose schema depends
	// on the live instance (unions) describe every alternative in that case.
	Schema(sample *T) js.Schema
	// Serialize converts *v to a value. A composite adapter that fails on
	// some properties returns the partial output together with Issues.
	Serialize(v *T) (value.Value, error)
	// Deserialize reads j into *dst. Fields without a counterpart in j keep
	// their current value.
	Deserialize(j value.Value, dst *T) error
}

// Stringify renders v as canonical compact JSON text.
func Stringify(v value.Value) (string, error) {
	b, err := value.Encode(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetSchema returns the schema of T, optionally seeded with a live instance.
func GetSchema[T any](a Adapter[T], sample *T) js.Schema { return a.Schema(sample) }

// Serialize converts v to a value.
func Serialize[T any](a Adapter[T], v T) (value.Value, error) { return a.Serialize(&v) }

// SerializeInto stores the serialized form of *v in *dst and reports
// success. On failure *dst holds the partial output.
func SerializeInto[T any](a Adapter[T], v *T, dst *value.Value) bool {
	out, err := a.Serialize(v)
	*dst = out
	return err == nil
}

// Deserialize reads j into a fresh T.
func Deserialize[T any](a Adapter[T], j value.Value) (T, error) {
	var out T
	err := a.Deserialize(j, &out)
	return out, err
}

// MustDeserialize is like Deserialize but panics on failure.
func MustDeserialize[T any](a Adapter[T], j value.Value) T {
	out, err := Deserialize(a, j)
	if err != nil {
		panic(fmt.Sprintf("jsonadapt: deserialize %T: %v", out, err))
	}
	return out
}

// DeserializeInto reads j into *dst and reports success. Fields j does not
// mention keep their current value.
func DeserializeInto[T any](a Adapter[T], j value.Value, dst *T) bool {
	return a.Deserialize(j, dst) == nil
}

// StringifyObject serializes v and renders it as JSON text.
func StringifyObject[T any](a Adapter[T], v T) (string, error) {
	j, err := a.Serialize(&v)
	if err != nil {
		return "", err
	}
	return Stringify(j)
}

// ParseObject parses JSON text and deserializes it into T.
func ParseObject[T any](a Adapter[T], s string, opts ...ParseOpt) (T, error) {
	var out T
	j, err := Parse(s, opts...)
	if err != nil {
		return out, err
	}
	err = a.Deserialize(j, &out)
	return out, err
}

// ParseAndValidate parses JSON text, validates it against the schema of T and
// deserializes it. Validation failures are returned as Issues and leave the
// result at its zero value.
func ParseAndValidate[T any](a Adapter[T], s string, opts ...ParseOpt) (T, error) {
	var out T
	j, err := Parse(s, opts...)
	if err != nil {
		return out, err
	}
	return ValidateAndDeserialize(a, j)
}

// ValidateAndDeserialize validates j against the schema of T and, when it
// conforms, deserializes it.
func ValidateAndDeserialize[T any](a Adapter[T], j value.Value) (T, error) {
	var out T
	if iss := Validate(j, a.Schema(nil)); len(iss) > 0 {
		return out, iss
	}
	err := a.Deserialize(j, &out)
	return out, err
}
