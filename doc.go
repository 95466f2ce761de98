// Package jsonlogic evaluates JsonLogic rules: data-driven boolean and
// arithmetic expressions encoded as nested JSON trees, evaluated safely
// against an input data context with no code execution.
//
// A rule is either a primitive (a literal value) or an operation node: a
// single-key map from an operator name to its operands, which are themselves
// rules. Evaluation walks the tree depth-first and returns both the computed
// value and an executed-logic trace: the rule pruned to the branches that
// actually contributed to the result, suitable for explaining to a user why
// a rule produced what it did.
//
// Typical use is as follows:
//
//  1. Decode a rule tree and a data context with encoding/json
//  2. Call Apply to get the value and the executed-logic trace
//  3. Inspect the Result, or render it with Result.String or Report
//
// Applications that evaluate a fixed set of rules repeatedly can store them
// in an Engine, which validates each rule's structure once at Add time and
// evaluates by rule ID.
//
// # Concurrency
//
// Rule trees and data contexts are never modified, each call produces fresh
// trace structures, and the operator table is read-only after package init,
// so any number of evaluations may run in parallel. The only side channel is
// the log operator, which writes to a logrus logger (injectable per
// evaluation with WithLogger); logrus loggers are safe for concurrent use.
//
// # Errors
//
// Failures are surfaced synchronously as the outcome of Apply and are
// distinguishable by kind with errors.Is: ErrUnknownVariable,
// ErrUnrecognizedOperator, ErrMalformedRule and ErrMaxDepthExceeded. There is
// no partial-success mode: either a value and trace are produced, or an
// error is returned.
package jsonlogic
