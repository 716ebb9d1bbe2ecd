package attr

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ValueType identifies the variant held by a Value.
type ValueType uint8

// Value variants.
const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeColor
)

// String returns the string representation of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeColor:
		return "color"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding one kind-specific attribute payload.
// Values are immutable and comparable with Equal.
type Value struct {
	typ ValueType
	str string
	num int64
	flt float64
	bit bool
	col colorful.Color
}

// String creates a string-valued attribute payload.
func String(s string) Value {
	return Value{typ: TypeString, str: s}
}

// Int creates an integer-valued attribute payload.
func Int(i int64) Value {
	return Value{typ: TypeInt, num: i}
}

// Float creates a float-valued attribute payload.
func Float(f float64) Value {
	return Value{typ: TypeFloat, flt: f}
}

// Bool creates a boolean-valued attribute payload.
func Bool(b bool) Value {
	return Value{typ: TypeBool, bit: b}
}

// Color creates a color-valued attribute payload.
func Color(c colorful.Color) Value {
	return Value{typ: TypeColor, col: c}
}

// HexColor creates a color-valued payload from a hex string like "#ff8800".
func HexColor(hex string) (Value, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Value{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	return Color(c), nil
}

// Type returns the variant held by the value.
func (v Value) Type() ValueType {
	return v.typ
}

// Str returns the string payload. The bool reports whether the value holds
// that variant.
func (v Value) Str() (string, bool) {
	return v.str, v.typ == TypeString
}

// Int returns the integer payload.
func (v Value) Int() (int64, bool) {
	return v.num, v.typ == TypeInt
}

// Float returns the float payload.
func (v Value) Float() (float64, bool) {
	return v.flt, v.typ == TypeFloat
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	return v.bit, v.typ == TypeBool
}

// Color returns the color payload.
func (v Value) Color() (colorful.Color, bool) {
	return v.col, v.typ == TypeColor
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInt:
		return strconv.FormatInt(v.num, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.bit)
	case TypeColor:
		return v.col.Hex()
	default:
		return "invalid"
	}
}

// Interface returns the payload as an untyped value, for handing to
// property maps and theme rules.
func (v Value) Interface() any {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInt:
		return v.num
	case TypeFloat:
		return v.flt
	case TypeBool:
		return v.bit
	case TypeColor:
		return v.col
	default:
		return nil
	}
}
