package jsonlogic

import "errors"

// Error kinds surfaced by Apply. Callers distinguish them with errors.Is.
var (
	// ErrUnknownVariable is returned when a var lookup fails and the rule
	// supplied no default value.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrUnrecognizedOperator is returned when an operation node names an
	// operator that is not in the operator table.
	ErrUnrecognizedOperator = errors.New("unrecognized operation")

	// ErrMalformedRule is returned for structurally invalid rules: operation
	// nodes with zero or multiple keys, missing_some without [min, names],
	// and operands that cannot be coerced where a number is required.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrMaxDepthExceeded guards against unbounded recursion on
	// pathological or cyclic input trees.
	ErrMaxDepthExceeded = errors.New("max evaluation depth exceeded")

	// ErrRuleNotFound is returned by Engine.Evaluate for an unknown rule ID.
	ErrRuleNotFound = errors.New("rule not found")
)
