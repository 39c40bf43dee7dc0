package value

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	j "github.com/goccy/go-json"
)

// Encode renders v as canonical compact JSON. Object members keep insertion
// order and Empty members are skipped; an Empty value elsewhere renders as
// null.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) { return Encode(v) }

func appendValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindEmpty, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		return appendFloat(buf, v.f)
	case KindString:
		return appendString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		first := true
		var err error
		v.obj.Range(func(k string, mv Value) bool {
			if mv.IsEmpty() {
				return true
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err = appendString(buf, k); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = appendValue(buf, mv)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("value: invalid kind %d", v.kind)
	}
	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	b, err := j.MarshalWithOption(s, j.DisableHTMLEscape())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// appendFloat uses the same notation switch as ES6 number formatting: plain
// decimals for ordinary magnitudes, exponent form for tiny and huge ones.
func appendFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ErrUnsupportedNumber, f)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf.WriteString(strconv.FormatFloat(f, format, -1, 64))
	return nil
}
