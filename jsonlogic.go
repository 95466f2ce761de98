package jsonlogic

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Apply evaluates a JsonLogic rule against the data context and returns the
// computed value together with the executed-logic trace: the rule tree pruned
// to the branches that actually contributed to the result.
//
// rule and data are trees of the values encoding/json produces: nil, bool,
// float64, string, []any and map[string]any. Neither is modified. A nil data
// context is treated as an empty map.
func Apply(rule, data any, opts ...EvalOption) (*Result, error) {
	o := EvalOptions{
		MaxDepth: defaultMaxDepth,
		Logger:   logrus.StandardLogger(),
	}
	applyEvalOptions(&o, opts...)

	if data == nil {
		data = map[string]any{}
	}

	ev := evaluation{data: data, opts: o}
	value, trace, err := ev.apply(rule, 0)
	if err != nil {
		return nil, err
	}
	return &Result{Value: value, Trace: trace, OpsEvaluated: ev.ops}, nil
}

// evaluation threads the data context and options through the recursive
// walk. It is created per Apply call; concurrent evaluations share nothing
// but the read-only operator table.
type evaluation struct {
	data any
	opts EvalOptions
	ops  int
}

// apply walks one node of the rule tree, returning its value and its
// executed-logic trace.
func (e *evaluation) apply(rule any, depth int) (any, any, error) {
	if depth > e.opts.MaxDepth {
		return nil, nil, fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, depth)
	}

	// Primitives evaluate to themselves and are their own trace.
	node, ok := rule.(map[string]any)
	if !ok {
		return rule, rule, nil
	}

	op, raw, err := operationNode(node)
	if err != nil {
		return nil, nil, err
	}

	// Unary sugar: {"var": "x"} means {"var": ["x"]}.
	operands, ok := raw.([]any)
	if !ok {
		operands = []any{raw}
	}

	e.ops++
	values := make([]any, len(operands))
	traces := make([]any, len(operands))
	for i, operand := range operands {
		v, tr, err := e.apply(operand, depth+1)
		if err != nil {
			return nil, nil, err
		}
		values[i] = v
		traces[i] = tr
	}
	trace := map[string]any{op: traces}

	// Context-aware operators first, then the pure table.
	switch op {
	case "var":
		v, err := getVar(e.data, values)
		if err != nil {
			return nil, nil, err
		}
		return v, trace, nil
	case "missing":
		return missing(e.data, values), trace, nil
	case "missing_some":
		v, err := missingSome(e.data, values)
		if err != nil {
			return nil, nil, err
		}
		return v, trace, nil
	case "if":
		v, branch := selectBranch(values)
		if branch < 0 {
			// No condition held and there was no else: the if produced
			// nothing observable.
			return nil, map[string]any{}, nil
		}
		// The trace collapses to the chosen branch; conditions and
		// untaken branches are discarded.
		return v, traces[branch], nil
	case "log":
		v, _ := pair(values)
		e.opts.Logger.Info(stringify(v))
		return v, trace, nil
	}

	fn, ok := operators[op]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnrecognizedOperator, op)
	}
	v, err := fn(values)
	if err != nil {
		return nil, nil, err
	}
	return v, trace, nil
}

// operationNode extracts the single operator name and operand container from
// an operation node. Nodes with zero keys or more than one key are rejected:
// with no defined map iteration order there is no deterministic "first" key
// to honor.
func operationNode(node map[string]any) (string, any, error) {
	if len(node) == 0 {
		return "", nil, fmt.Errorf("%w: operation node with no operator", ErrMalformedRule)
	}
	if len(node) > 1 {
		return "", nil, fmt.Errorf("%w: operation node with %d keys", ErrMalformedRule, len(node))
	}
	for op, raw := range node {
		return op, raw, nil
	}
	return "", nil, nil
}
