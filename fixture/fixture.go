// Package fixture loads and runs shared JsonLogic conformance fixtures in
// the format published at http://jsonlogic.com/tests.json: a JSON array
// mixing section-comment strings with [rule, data, expected] triples.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"github.com/rulekit/jsonlogic"
)

// A Test is one [rule, data, expected] triple.
type Test struct {
	Rule any
	Data any
	Want any
}

// An Outcome is the result of running one Test.
type Outcome struct {
	Test Test
	Got  any
	Err  error
	Pass bool
}

// Decode reads a fixture array from r. Strings in the array are section
// comments and are skipped; everything else must be a three-element array.
func Decode(r io.Reader) ([]Test, error) {
	var raw []any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding fixture")
	}

	tests := make([]Test, 0, len(raw))
	for i, item := range raw {
		if _, ok := item.(string); ok {
			continue
		}
		triple, ok := item.([]any)
		if !ok || len(triple) != 3 {
			return nil, errors.Errorf("fixture item %d: expected [rule, data, expected] triple, got %v", i, item)
		}
		tests = append(tests, Test{
			Rule: plain(triple[0]),
			Data: plain(triple[1]),
			Want: plain(triple[2]),
		})
	}
	return tests, nil
}

// plain rewrites json.Number values to float64 so fixtures carry the same
// value types encoding/json produces by default.
func plain(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	default:
		return v
	}
}

// Load reads a fixture file from disk.
func Load(path string) ([]Test, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening fixture %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Fetch downloads a fixture set, typically http://jsonlogic.com/tests.json.
func Fetch(ctx context.Context, url string) ([]Test, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}

	client := http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching fixture %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching fixture %s: status %s", url, resp.Status)
	}
	return Decode(resp.Body)
}

// Run applies every test's rule to its data and compares the value to the
// expectation. Evaluation errors fail the test and are recorded in the
// outcome.
func Run(tests []Test, opts ...jsonlogic.EvalOption) []Outcome {
	outcomes := make([]Outcome, len(tests))
	for i, tc := range tests {
		out := Outcome{Test: tc}
		r, err := jsonlogic.Apply(tc.Rule, tc.Data, opts...)
		if err != nil {
			out.Err = err
		} else {
			out.Got = r.Value
			out.Pass = equalValue(r.Value, tc.Want)
		}
		outcomes[i] = out
	}
	return outcomes
}

// Summary counts passed and failed outcomes.
func Summary(outcomes []Outcome) (passed, failed int) {
	for _, o := range outcomes {
		if o.Pass {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// String describes a failed outcome for reporting.
func (o Outcome) String() string {
	rule, _ := json.Marshal(o.Test.Rule)
	data, _ := json.Marshal(o.Test.Data)
	if o.Err != nil {
		return fmt.Sprintf("%s  %s  =>  error: %v", rule, data, o.Err)
	}
	want, _ := json.Marshal(o.Test.Want)
	got, _ := json.Marshal(o.Got)
	return fmt.Sprintf("%s  %s  =>  got %s, want %s", rule, data, got, want)
}

// equalValue compares an evaluation result to a fixture expectation.
// Numbers compare with the evaluator's strict tolerance, so an int64 sum
// matches a float64 expectation; containers compare element-wise.
func equalValue(got, want any) bool {
	switch w := want.(type) {
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for i := range w {
			if !equalValue(g[i], w[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for k := range w {
			gv, present := g[k]
			if !present || !equalValue(gv, w[k]) {
				return false
			}
		}
		return true
	default:
		if jsonlogic.StrictEquals(got, want) {
			return true
		}
		return reflect.DeepEqual(got, want)
	}
}
