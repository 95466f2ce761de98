package jsonlogic

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// An Engine holds a set of named rules, validated once when added and
// evaluated by ID. Rules and data are read-only during evaluation, so any
// number of Evaluate calls may run concurrently with each other; Add and
// Remove take the write lock.
type Engine struct {
	// The rules map holds the rules passed by the user of the engine
	rules map[string]*Rule

	// Mutex for the rules map
	mu sync.RWMutex

	// Default options applied to every evaluation, before per-call options
	opts []EvalOption
}

// NewEngine initializes a new engine. The options become the defaults for
// every evaluation; per-call options override them.
func NewEngine(opts ...EvalOption) *Engine {
	return &Engine{
		rules: make(map[string]*Rule),
		opts:  opts,
	}
}

// Add validates the rules and stores them in the engine, ready to be
// evaluated. An existing rule with the same ID is replaced.
func (e *Engine) Add(rules ...*Rule) error {
	for _, r := range rules {
		if r == nil {
			return fmt.Errorf("attempt to add nil rule")
		}
		if len(strings.TrimSpace(r.ID)) == 0 {
			return fmt.Errorf("required rule ID for rule with logic %v", r.Logic)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %s: %w", r.ID, err)
		}

		e.mu.Lock()
		e.rules[r.ID] = r
		e.mu.Unlock()
	}
	return nil
}

// Rule returns the rule with the given ID.
func (e *Engine) Rule(id string) (*Rule, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.rules[id]
	return r, ok
}

// Remove deletes the rule with the given ID.
func (e *Engine) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.rules, id)
}

// Keys returns the IDs of the rules in the engine, sorted.
func (e *Engine) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ks := make([]string, 0, len(e.rules))
	for k := range e.rules {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// RuleCount is the number of rules in the engine.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// Evaluate applies the rule with the given ID to the data.
func (e *Engine) Evaluate(data any, id string, opts ...EvalOption) (*Result, error) {
	e.mu.RLock()
	rule, ok := e.rules[id]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}

	combined := make([]EvalOption, 0, len(e.opts)+len(opts))
	combined = append(combined, e.opts...)
	combined = append(combined, opts...)
	return Apply(rule.Logic, data, combined...)
}
