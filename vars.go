package jsonlogic

import (
	"fmt"
	"strconv"
	"strings"
)

// sentinel returned by lookup when a path does not resolve. Distinct from nil
// so that data containing explicit nulls is not reported missing.
type notFound struct{}

var missingValue = notFound{}

// lookup walks data along the dot-separated path. Each segment is tried as a
// mapping key first; on a slice it must parse as an in-range index. Any
// failure returns def.
func lookup(data any, path string, def any) any {
	cur := data
	for _, seg := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return def
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return def
			}
			cur = c[i]
		default:
			return def
		}
	}
	return cur
}

// getVar implements the var operator over already-evaluated operands:
// args[0] is the path, args[1] an optional default. An empty or absent path
// yields the whole data context.
func getVar(data any, args []any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return data, nil
	}
	path := stringify(args[0])
	if path == "" {
		return data, nil
	}
	v := lookup(data, path, missingValue)
	if _, miss := v.(notFound); !miss {
		return v, nil
	}
	if len(args) > 1 {
		return args[1], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, path)
}

// missingNames normalizes the missing operator's operands: either variadic
// names or a single slice of names.
func missingNames(args []any) []any {
	if len(args) > 0 {
		if s, ok := args[0].([]any); ok {
			return s
		}
	}
	return args
}

// missing returns the names, in input order, that do not resolve in data.
func missing(data any, args []any) []any {
	out := []any{}
	for _, name := range missingNames(args) {
		if _, miss := lookup(data, stringify(name), missingValue).(notFound); miss {
			out = append(out, name)
		}
	}
	return out
}

// missingSome requires args to be [minRequired, names]. It returns an empty
// slice as soon as minRequired names are found, otherwise the names that were
// not found.
func missingSome(data any, args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: missing_some expects [min, names], got %d operands", ErrMalformedRule, len(args))
	}
	minRequired, ok := toFloat(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: missing_some minimum must be a number", ErrMalformedRule)
	}
	names, ok := args[1].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing_some names must be a list", ErrMalformedRule)
	}
	if minRequired < 1 {
		return []any{}, nil
	}
	found := 0
	out := []any{}
	for _, name := range names {
		if _, miss := lookup(data, stringify(name), missingValue).(notFound); miss {
			out = append(out, name)
			continue
		}
		found++
		if float64(found) >= minRequired {
			return []any{}, nil
		}
	}
	return out, nil
}
