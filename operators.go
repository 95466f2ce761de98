package jsonlogic

import (
	"fmt"
	"math"
	"strings"
)

// An opFunc evaluates one operator over already-evaluated operands. Every
// table entry is a pure function; operators that need the data context (var,
// missing, missing_some) or the logging sink (log) are dispatched before the
// table is consulted.
type opFunc func(args []any) (any, error)

// operators is the closed operator table. It is populated once at package
// init and never mutated afterwards, so concurrent evaluations may read it
// without locking.
var operators = map[string]opFunc{
	"==":    func(args []any) (any, error) { a, b := pair(args); return LooseEquals(a, b), nil },
	"===":   func(args []any) (any, error) { a, b := pair(args); return StrictEquals(a, b), nil },
	"!=":    func(args []any) (any, error) { a, b := pair(args); return !LooseEquals(a, b), nil },
	"!==":   func(args []any) (any, error) { a, b := pair(args); return !StrictEquals(a, b), nil },
	">":     func(args []any) (any, error) { a, b := pair(args); return Less(b, a), nil },
	">=":    func(args []any) (any, error) { a, b := pair(args); return Less(b, a) || LooseEquals(a, b), nil },
	"<":     opLess,
	"<=":    opLessOrEqual,
	"!":     func(args []any) (any, error) { a, _ := pair(args); return !Truthy(a), nil },
	"!!":    func(args []any) (any, error) { a, _ := pair(args); return Truthy(a), nil },
	"%":     opMod,
	"and":   opAnd,
	"or":    opOr,
	"?:":    opTernary,
	"in":    opIn,
	"cat":   opCat,
	"+":     opPlus,
	"*":     opMul,
	"-":     opMinus,
	"/":     opDiv,
	"min":   func(args []any) (any, error) { return pick(args, true), nil },
	"max":   func(args []any) (any, error) { return pick(args, false), nil },
	"merge": func(args []any) (any, error) { return Merge(args...), nil },
	"count": opCount,
}

// pair pads the operand list to two values, so unary sugar and short operand
// lists never panic.
func pair(args []any) (any, any) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return args[0], nil
	default:
		return args[0], args[1]
	}
}

func opLess(args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: < needs at least 2 operands", ErrMalformedRule)
	}
	return Less(args[0], args[1], args[2:]...), nil
}

func opLessOrEqual(args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: <= needs at least 2 operands", ErrMalformedRule)
	}
	return LessOrEqual(args[0], args[1], args[2:]...), nil
}

func opMod(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %% needs exactly 2 operands", ErrMalformedRule)
	}
	fa, oka := toFloat(args[0])
	fb, okb := toFloat(args[1])
	if !oka || !okb {
		return nil, fmt.Errorf("%w: %% needs numeric operands", ErrMalformedRule)
	}
	if fb == 0 {
		return nil, fmt.Errorf("%w: modulo by zero", ErrMalformedRule)
	}
	r := math.Mod(fa, fb)
	if isInt(args[0]) && isInt(args[1]) {
		return int64(r), nil
	}
	return r, nil
}

// opAnd folds left: the first falsy operand, or the last operand when all are
// truthy.
func opAnd(args []any) (any, error) {
	var last any = true
	for _, a := range args {
		if !Truthy(a) {
			return a, nil
		}
		last = a
	}
	return last, nil
}

// opOr folds left: the first truthy operand, or the last operand when none
// are truthy.
func opOr(args []any) (any, error) {
	var last any = false
	for _, a := range args {
		if Truthy(a) {
			return a, nil
		}
		last = a
	}
	return last, nil
}

// opTernary is the plain three-operand selector. Unlike if, all operands are
// already evaluated; there is no elseif chaining and no trace pruning.
func opTernary(args []any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: ?: needs exactly 3 operands", ErrMalformedRule)
	}
	if Truthy(args[0]) {
		return args[1], nil
	}
	return args[2], nil
}

// opIn tests containment: substring when the second operand is a string,
// element membership for slices, key presence for maps. Anything else is
// false, never an error.
func opIn(args []any) (any, error) {
	a, b := pair(args)
	switch c := b.(type) {
	case string:
		s, ok := a.(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(c, s), nil
	case []any:
		for _, v := range c {
			if equalValues(a, v) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		s, ok := a.(string)
		if !ok {
			return false, nil
		}
		_, present := c[s]
		return present, nil
	default:
		return false, nil
	}
}

func opCat(args []any) (any, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(stringify(a))
	}
	return sb.String(), nil
}

// opPlus sums with numeric coercion of strings. The sum stays an integer
// while every operand is integral, otherwise it promotes to float64.
func opPlus(args []any) (any, error) {
	var sumI int64
	var sumF float64
	float := false
	for _, a := range args {
		n, err := ToNumeric(a)
		if err != nil {
			return nil, err
		}
		switch t := n.(type) {
		case int64:
			sumI += t
			sumF += float64(t)
		case int:
			sumI += int64(t)
			sumF += float64(t)
		default:
			f, ok := toFloat(n)
			if !ok {
				return nil, fmt.Errorf("%w: + needs numeric operands", ErrMalformedRule)
			}
			float = true
			sumF += f
		}
	}
	if float {
		return sumF, nil
	}
	return sumI, nil
}

// opMul folds through float64, so the product is always a float.
func opMul(args []any) (any, error) {
	total := 1.0
	for _, a := range args {
		f, ok := toFloat(a)
		if !ok {
			return nil, fmt.Errorf("%w: * needs numeric operands", ErrMalformedRule)
		}
		total *= f
	}
	return total, nil
}

// opMinus negates with one operand, subtracts with two.
func opMinus(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: - needs at least 1 operand", ErrMalformedRule)
	}
	a, err := ToNumeric(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if i, ok := a.(int64); ok {
			return -i, nil
		}
		if i, ok := a.(int); ok {
			return -i, nil
		}
		f, ok := toFloat(a)
		if !ok {
			return nil, fmt.Errorf("%w: - needs numeric operands", ErrMalformedRule)
		}
		return -f, nil
	}
	b, err := ToNumeric(args[1])
	if err != nil {
		return nil, err
	}
	if isInt(a) && isInt(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return int64(fa) - int64(fb), nil
	}
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if !oka || !okb {
		return nil, fmt.Errorf("%w: - needs numeric operands", ErrMalformedRule)
	}
	return fa - fb, nil
}

// opDiv is the identity with one operand and float division with two.
func opDiv(args []any) (any, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 2:
		fa, oka := toFloat(args[0])
		fb, okb := toFloat(args[1])
		if !oka || !okb {
			return nil, fmt.Errorf("%w: / needs numeric operands", ErrMalformedRule)
		}
		if fb == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrMalformedRule)
		}
		return fa / fb, nil
	default:
		return nil, fmt.Errorf("%w: / needs 1 or 2 operands", ErrMalformedRule)
	}
}

// pick returns the smallest (or largest) operand, comparing the way Less
// does, and returns the original operand rather than its coercion.
func pick(args []any, smallest bool) any {
	if len(args) == 0 {
		return nil
	}
	best := args[0]
	for _, a := range args[1:] {
		if (smallest && Less(a, best)) || (!smallest && Less(best, a)) {
			best = a
		}
	}
	return best
}

func opCount(args []any) (any, error) {
	n := int64(0)
	for _, a := range args {
		if Truthy(a) {
			n++
		}
	}
	return n, nil
}

// selectBranch implements if over already-evaluated operands: (condition,
// result) pairs with an optional trailing else. It returns the chosen value
// and its position in the operand list, or -1 when no branch was taken.
func selectBranch(args []any) (any, int) {
	for i := 0; i+1 < len(args); i += 2 {
		if Truthy(args[i]) {
			return args[i+1], i + 1
		}
	}
	if len(args)%2 == 1 {
		return args[len(args)-1], len(args) - 1
	}
	return nil, -1
}
