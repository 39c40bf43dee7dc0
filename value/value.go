// Package value is the dynamic JSON value model shared by the schema,
// validator and adapters.
//
// A Value is a closed tagged union over the JSON kinds plus Empty, which
// stands for "absent" (a missing object member, an unset default). Objects
// keep insertion order for output, but order never matters for lookup or
// equality.
package value

import (
	"errors"
	"fmt"
	"math"
)

// Kind is the storage tag of a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

var (
	// ErrTypeMismatch is returned by checked extraction when the stored kind
	// cannot satisfy the request.
	ErrTypeMismatch = errors.New("value: type mismatch")
	// ErrUnsupportedNumber is returned when encoding NaN or infinities.
	ErrUnsupportedNumber = errors.New("value: unsupported number")
)

// Value is a JSON value. The zero Value is Empty.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array builds an array value. The elements are copied.
func Array(vs ...Value) Value {
	arr := make([]Value, len(vs))
	copy(arr, vs)
	return Value{kind: KindArray, arr: arr}
}

// ObjectOf wraps an object. A nil object yields an empty one.
func ObjectOf(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// EmptyObject returns a new value holding an empty object.
func EmptyObject() Value { return ObjectOf(NewObject()) }

// Kind reports the storage tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the absent value.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Type reports the JSON data model type of v.
func (v Value) Type() Type {
	switch v.kind {
	case KindNull:
		return TypeNull
	case KindBool:
		return TypeBoolean
	case KindInt:
		return TypeInteger
	case KindFloat:
		return TypeNumber
	case KindString:
		return TypeString
	case KindArray:
		return TypeArray
	case KindObject:
		return TypeObject
	default:
		return TypeUnknown
	}
}

func mismatch(v Value, want string) error {
	return fmt.Errorf("%w: expected %s got %s", ErrTypeMismatch, want, v.kind)
}

// AsBool extracts a boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, mismatch(v, "bool")
	}
	return v.b, nil
}

// AsInt extracts an integer. Floats are not narrowed.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, mismatch(v, "int")
	}
	return v.i, nil
}

// AsFloat extracts a number, widening integers.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	default:
		return 0, mismatch(v, "number")
	}
}

// AsString extracts a string.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", mismatch(v, "string")
	}
	return v.s, nil
}

// AsArray returns the elements of an array. The returned slice is owned by v;
// writes to it are writes to v.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, mismatch(v, "array")
	}
	return v.arr, nil
}

// AsObject returns the object held by v. Mutating it mutates v in place.
func (v Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, mismatch(v, "object")
	}
	return v.obj, nil
}

// Len returns the number of elements of an array or members of an object,
// and 0 for everything else.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports structural equality. Integers and floats compare by numeric
// value; object member order is ignored.
func Equal(a, b Value) bool {
	if isNumber(a) && isNumber(b) {
		if a.kind == KindInt && b.kind == KindInt {
			return a.i == b.i
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		equal := true
		a.obj.Range(func(k string, av Value) bool {
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}

// Equal is the method form of the package-level Equal.
func (v Value) Equal(other Value) bool { return Equal(v, other) }

func isNumber(v Value) bool { return v.kind == KindInt || v.kind == KindFloat }

// String renders v as compact JSON text for diagnostics. Values that cannot
// be encoded render with the encoding error.
func (v Value) String() string {
	b, err := Encode(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}

// IsIntegral reports whether a float holds an integer that fits int64.
func IsIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}
