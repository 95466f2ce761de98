package jsonlogic

import "github.com/sirupsen/logrus"

// defaultMaxDepth bounds recursion on untrusted rule trees.
const defaultMaxDepth = 100

// EvalOptions control a single evaluation.
type EvalOptions struct {
	// MaxDepth is the deepest the evaluator will recurse into the rule tree
	// before returning ErrMaxDepthExceeded.
	MaxDepth int

	// Logger receives the operands of log operators. Defaults to the
	// process-wide logrus standard logger.
	Logger logrus.FieldLogger
}

type EvalOption func(o *EvalOptions)

// Given a list of EvalOption functions, apply their effect on the
// EvalOptions struct.
func applyEvalOptions(o *EvalOptions, opts ...EvalOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// MaxDepth overrides the default recursion limit.
func MaxDepth(n int) EvalOption {
	return func(o *EvalOptions) {
		o.MaxDepth = n
	}
}

// WithLogger directs the log operator's output to l instead of the standard
// logger. Pass a test hook logger to capture log operands deterministically.
func WithLogger(l logrus.FieldLogger) EvalOption {
	return func(o *EvalOptions) {
		o.Logger = l
	}
}
