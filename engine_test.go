package jsonlogic_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/rulekit/jsonlogic"
)

func TestEngineAddAndEvaluate(t *testing.T) {
	is := is.New(t)

	e := jsonlogic.NewEngine()
	err := e.Add(
		jsonlogic.NewRule("cool_pie", parseJSON(t, `{"and":[{"<":[{"var":"temp"},110]},{"==":[{"var":"pie.filling"},"apple"]}]}`)),
		jsonlogic.NewRule("has_contact", parseJSON(t, `{"missing_some":[1,["cell_phone","home_phone"]]}`)),
	)
	is.NoErr(err)
	is.Equal(e.RuleCount(), 2)
	is.Equal(e.Keys(), []string{"cool_pie", "has_contact"})

	result, err := e.Evaluate(parseJSON(t, `{"temp":100,"pie":{"filling":"apple"}}`), "cool_pie")
	is.NoErr(err)
	is.Equal(result.Value, true)

	_, ok := e.Rule("cool_pie")
	is.True(ok)

	e.Remove("cool_pie")
	is.Equal(e.RuleCount(), 1)
	_, ok = e.Rule("cool_pie")
	is.True(!ok)
}

func TestEngineRuleNotFound(t *testing.T) {
	e := jsonlogic.NewEngine()
	_, err := e.Evaluate(nil, "nope")
	if !errors.Is(err, jsonlogic.ErrRuleNotFound) {
		t.Fatalf("got error %v, want ErrRuleNotFound", err)
	}
}

func TestEngineAddValidates(t *testing.T) {
	is := is.New(t)
	e := jsonlogic.NewEngine()

	// unknown operators are rejected at add time, before any evaluation
	err := e.Add(jsonlogic.NewRule("bad", parseJSON(t, `{"bogus":[1,2]}`)))
	is.True(errors.Is(err, jsonlogic.ErrUnrecognizedOperator))

	err = e.Add(jsonlogic.NewRule("empty", parseJSON(t, `{"or":[true,{}]}`)))
	is.True(errors.Is(err, jsonlogic.ErrMalformedRule))

	err = e.Add(jsonlogic.NewRule("  ", parseJSON(t, `true`)))
	is.True(err != nil)

	err = e.Add(nil)
	is.True(err != nil)

	is.Equal(e.RuleCount(), 0)
}

// Engine-level options are defaults; per-call options override them.
func TestEngineOptions(t *testing.T) {
	deep := any(true)
	for i := 0; i < 50; i++ {
		deep = map[string]any{"!": deep}
	}

	e := jsonlogic.NewEngine(jsonlogic.MaxDepth(10))
	if err := e.Add(jsonlogic.NewRule("deep", deep)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := e.Evaluate(nil, "deep")
	if !errors.Is(err, jsonlogic.ErrMaxDepthExceeded) {
		t.Fatalf("got error %v, want ErrMaxDepthExceeded", err)
	}

	if _, err := e.Evaluate(nil, "deep", jsonlogic.MaxDepth(100)); err != nil {
		t.Fatalf("per-call override: unexpected error: %v", err)
	}
}

func TestEngineParallelEvaluate(t *testing.T) {
	e := jsonlogic.NewEngine()
	if err := e.Add(jsonlogic.NewRule("r", parseJSON(t, `{"<":[0,{"var":"temp"},100]}`))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := parseJSON(t, `{"temp":37}`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := e.Evaluate(data, "r")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if result.Value != true {
				t.Errorf("value = %v, want true", result.Value)
			}
		}()
	}
	wg.Wait()
}
