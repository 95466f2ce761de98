package jsonlogic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/rulekit/jsonlogic"
)

func TestRuleValidate(t *testing.T) {
	is := is.New(t)

	good := jsonlogic.NewRule("good", parseJSON(t,
		`{"if":[{"<":[{"var":"temp"},0]},"freezing",{"<":[{"var":"temp"},100]},"liquid","gas"]}`))
	is.NoErr(good.Validate())

	// literal arrays are walked too
	lit := jsonlogic.NewRule("lit", parseJSON(t, `[1,{"var":"a"},"three"]`))
	is.NoErr(lit.Validate())

	bogus := jsonlogic.NewRule("bogus", parseJSON(t, `{"and":[true,{"bogus":1}]}`))
	is.True(errors.Is(bogus.Validate(), jsonlogic.ErrUnrecognizedOperator))

	empty := jsonlogic.NewRule("empty", parseJSON(t, `{"or":[{},true]}`))
	is.True(errors.Is(empty.Validate(), jsonlogic.ErrMalformedRule))

	arity := jsonlogic.NewRule("arity", parseJSON(t, `{"missing_some":[1]}`))
	is.True(errors.Is(arity.Validate(), jsonlogic.ErrMalformedRule))
}

func TestRuleTree(t *testing.T) {
	r := jsonlogic.NewRule("pie", parseJSON(t,
		`{"and":[{"<":[{"var":"temp"},110]},{"==":[{"var":"pie.filling"},"apple"]}]}`))

	tree := r.Tree()
	for _, want := range []string{"and", "├──", "└──", "var: temp", "var: pie.filling", "110", "apple"} {
		if !strings.Contains(tree, want) {
			t.Errorf("tree missing %q:\n%s", want, tree)
		}
	}
}

func TestRuleString(t *testing.T) {
	r := jsonlogic.NewRule("pie", parseJSON(t, `{"<":[{"var":"temp"},110]}`))

	s := r.String()
	for _, want := range []string{"pie", "<", "var"} {
		if !strings.Contains(s, want) {
			t.Errorf("rule table missing %q:\n%s", want, s)
		}
	}
}
