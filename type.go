// File: speechrules/prefs/type.go
package prefs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindEmpty is the zero Value, returned for absent preferences.
	KindEmpty Kind = iota
	// KindText holds free-form text.
	KindText
	// KindBool holds a boolean.
	KindBool
	// KindInt holds a signed integer.
	KindInt
	// KindFloat holds a floating-point number.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "empty"
	}
}

// Value is a preference value: exactly one of text, boolean, integer or
// float. The zero Value is empty and renders as "".
type Value struct {
	kind Kind
	text string
	b    bool
	i    int64
	f    float64
}

// TextValue returns a text Value.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// IntValue returns an integer Value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue returns a float Value.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// Kind returns the variant held by the Value.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the Value holds nothing.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// String renders the Value in its text form. Empty Values render as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// Float64 converts the Value to a float64.
// Attempts conversion from integers, booleans and parsable text.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float64: %w", v.text, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert empty value to float64")
	}
}

// Int64 converts the Value to an int64.
// Attempts conversion from floats (truncating), booleans and parsable text;
// text parsing uses base auto-detection so "0x10" reads as 16.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		return int64(v.f), nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindText:
		s := strings.TrimSpace(v.text)
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		} else if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f), nil
		} else {
			return 0, fmt.Errorf("cannot convert %q to int64: %w", v.text, err)
		}
	default:
		return 0, fmt.Errorf("cannot convert empty value to int64")
	}
}

// Bool converts the Value to a bool.
// Numeric values follow the 0=false, non-zero=true interpretation.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindFloat:
		return v.f != 0, nil
	case KindText:
		b, err := strconv.ParseBool(strings.TrimSpace(v.text))
		if err != nil {
			return false, fmt.Errorf("cannot convert %q to bool: %w", v.text, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert empty value to bool")
	}
}

// Interface returns the Value as its natural Go type, nil when empty.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return nil
	}
}

// valueFromAny converts a scalar leaf of a parsed document tree into a Value.
// Text is trimmed of surrounding whitespace; a null scalar becomes empty
// text. Returns false for shapes that have no place in a preference set
// (timestamps, binary, sequences that slipped through).
func valueFromAny(raw any) (Value, bool) {
	switch v := raw.(type) {
	case nil:
		return TextValue(""), true
	case string:
		return TextValue(strings.TrimSpace(v)), true
	case bool:
		return BoolValue(v), true
	case int:
		return IntValue(int64(v)), true
	case int64:
		return IntValue(v), true
	case uint64:
		return IntValue(int64(v)), true
	case float32:
		return FloatValue(float64(v)), true
	case float64:
		return FloatValue(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return IntValue(i), true
		}
		if f, err := v.Float64(); err == nil {
			return FloatValue(f), true
		}
		return TextValue(v.String()), true
	default:
		return Value{}, false
	}
}
