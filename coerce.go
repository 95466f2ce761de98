package jsonlogic

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// A value's kind, used for strict equality. JSON numbers are a single kind
// regardless of whether they decoded to an integer or a float.
type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func kindOf(v any) kind {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case float64, float32, int, int64, int32, uint, uint64:
		return kindNumber
	case string:
		return kindString
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	default:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Slice, reflect.Array:
			return kindArray
		case reflect.Map:
			return kindObject
		}
		return kindObject
	}
}

// Truthy reports whether a value counts as true in a boolean context:
// null, zero numbers, empty strings and empty containers are false,
// everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len() > 0
		}
		return true
	}
}

// toFloat coerces numbers and numeric strings to float64.
// Booleans and containers do not coerce.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isNumber(v any) bool {
	return kindOf(v) == kindNumber
}

func isInt(v any) bool {
	switch v.(type) {
	case int, int64, int32, uint, uint64:
		return true
	}
	return false
}

// stringify renders a value in its canonical textual form, the form used by
// loose equality and by the cat operator. Floats drop a trailing ".0" so that
// 1.0 and "1" compare equal.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// equalValues is native equality: numbers compare numerically across
// integer/float representations, containers compare deeply.
func equalValues(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// LooseEquals implements the == operator: if either operand is a string both
// are compared as strings, if either is a boolean both are compared as
// booleans, otherwise native equality applies.
func LooseEquals(a, b any) bool {
	if kindOf(a) == kindString || kindOf(b) == kindString {
		return stringify(a) == stringify(b)
	}
	if kindOf(a) == kindBool || kindOf(b) == kindBool {
		return Truthy(a) == Truthy(b)
	}
	return equalValues(a, b)
}

// StrictEquals implements the === operator: operands of different kinds are
// never equal; numbers are equal when nearly equal (1e-9 relative tolerance),
// absorbing float noise between integer-valued and float-valued literals.
func StrictEquals(a, b any) bool {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return false
	}
	if ka == kindNumber {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return almostEqual(fa, fb)
	}
	return reflect.DeepEqual(a, b)
}

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// Less implements the < operator. If either operand is a number, both are
// coerced to float64; a failed coercion (a non-numeric string) yields false,
// not an error. Strings compare lexically. With more than two operands the
// relation chains: Less(1, 2, 3) means 1 < 2 < 3.
func Less(a, b any, rest ...any) bool {
	if isNumber(a) || isNumber(b) {
		fa, oka := toFloat(a)
		fb, okb := toFloat(b)
		if !oka || !okb {
			return false
		}
		if !(fa < fb) {
			return false
		}
	} else {
		sa, oka := a.(string)
		sb, okb := b.(string)
		if !oka || !okb {
			return false
		}
		if !(sa < sb) {
			return false
		}
	}
	if len(rest) == 0 {
		return true
	}
	return Less(b, rest[0], rest[1:]...)
}

// LessOrEqual implements the <= operator, chained across any extra operands
// the same way Less is.
func LessOrEqual(a, b any, rest ...any) bool {
	if !Less(a, b) && !LooseEquals(a, b) {
		return false
	}
	if len(rest) == 0 {
		return true
	}
	return LessOrEqual(b, rest[0], rest[1:]...)
}

// ToNumeric converts a numeric string to an int64 or, if it contains a
// decimal point, a float64. Non-strings pass through unchanged. This matters
// for expressions like {"+": "0"}, which must produce a number.
func ToNumeric(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric operand %q", ErrMalformedRule, s)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric operand %q", ErrMalformedRule, s)
	}
	return n, nil
}

// Merge flattens its arguments one level into a single slice: slice arguments
// contribute their elements, scalars contribute themselves.
func Merge(args ...any) []any {
	out := []any{}
	for _, a := range args {
		if s, ok := a.([]any); ok {
			out = append(out, s...)
			continue
		}
		out = append(out, a)
	}
	return out
}
