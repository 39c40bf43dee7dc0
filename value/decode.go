package value

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	eng "github.com/reoring/jsonadapt/internal/engine"
)

var (
	// ErrTrailingData is returned when input continues after the first value.
	ErrTrailingData = errors.New("value: trailing data after JSON value")
	// ErrUnexpectedToken is returned for structurally invalid token streams.
	ErrUnexpectedToken = errors.New("value: unexpected token")
)

// Decode reads exactly one JSON value from src. Numbers without a fraction or
// exponent that fit int64 decode as Int, all other numbers as Float.
func Decode(src eng.TokenSource) (Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return Value{}, err
	}
	if extra, err := src.NextToken(); err == nil {
		return Value{}, fmt.Errorf("%w: %s", ErrTrailingData, extra.Kind)
	} else if !errors.Is(err, io.EOF) {
		return Value{}, err
	}
	return v, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (Value, error) { return Decode(eng.NewBytes(b)) }

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	out, err := DecodeBytes(b)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func decodeValue(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return decodeObject(src)
	case eng.KindBeginArray:
		return decodeArray(src)
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return ParseNumber(tok.Number)
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnexpectedToken, tok.Kind)
	}
}

func decodeObject(src eng.TokenSource) (Value, error) {
	o := NewObject()
	for {
		tok, err := nextToken(src)
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndObject {
			return ObjectOf(o), nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, fmt.Errorf("%w: %s in object", ErrUnexpectedToken, tok.Kind)
		}
		vt, err := nextToken(src)
		if err != nil {
			return Value{}, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		o.Set(tok.String, v)
	}
}

func decodeArray(src eng.TokenSource) (Value, error) {
	arr := []Value{}
	for {
		tok, err := nextToken(src)
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndArray {
			return Value{kind: KindArray, arr: arr}, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
	}
}

func nextToken(src eng.TokenSource) (eng.Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return eng.Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

// ParseNumber converts a JSON number literal into an Int or Float value.
func ParseNumber(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("value: invalid number %q: %w", lit, err)
	}
	return Float(f), nil
}
