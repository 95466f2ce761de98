package jsonlogic

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestTruthy(t *testing.T) {
	is := is.New(t)

	is.True(!Truthy(nil))
	is.True(!Truthy(false))
	is.True(!Truthy(0.0))
	is.True(!Truthy(0))
	is.True(!Truthy(""))
	is.True(!Truthy([]any{}))
	is.True(!Truthy(map[string]any{}))

	is.True(Truthy(true))
	is.True(Truthy(3.14))
	is.True(Truthy(-1.0))
	is.True(Truthy("apple"))
	is.True(Truthy([]any{1.0}))
	is.True(Truthy(map[string]any{"a": 1.0}))
}

func TestLooseEquals(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{1.0, 1.0, true},
		{1.0, 2.0, false},
		{1.0, "1", true},
		{"1", 1.0, true},
		{0.0, false, true},
		{1.0, true, true},
		{2.0, true, true},
		{nil, false, true},
		{nil, nil, true},
		{"apple", "apple", true},
		{"apple", "banana", false},
		{int64(1), 1.0, true},
	}

	for _, c := range cases {
		if got := LooseEquals(c.a, c.b); got != c.want {
			t.Errorf("LooseEquals(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestStrictEquals(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{1.0, 1.0, true},
		{1.0, "1", false},
		{"1", 1.0, false},
		{0.0, false, false},
		{nil, nil, true},
		{"apple", "apple", true},
		// integer-valued and float-valued numbers of the same magnitude
		{int64(1), 1.0, true},
		{1.0, 1.0 + 1e-13, true},
		{1.0, 1.1, false},
		{[]any{1.0, "a"}, []any{1.0, "a"}, true},
		{[]any{1.0}, []any{2.0}, false},
	}

	for _, c := range cases {
		if got := StrictEquals(c.a, c.b); got != c.want {
			t.Errorf("StrictEquals(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLess(t *testing.T) {
	is := is.New(t)

	is.True(Less(1.0, 2.0))
	is.True(!Less(2.0, 1.0))
	is.True(!Less(1.0, 1.0))

	// numeric strings coerce
	is.True(Less("1", 2.0))
	is.True(Less(1.0, "2"))

	// a failed coercion is false, not an error
	is.True(!Less("apple", 2.0))
	is.True(!Less(2.0, "apple"))

	// strings compare lexically when no number is involved
	is.True(Less("apple", "banana"))
	is.True(!Less("banana", "apple"))

	// chained relations
	is.True(Less(1.0, 2.0, 3.0))
	is.True(!Less(1.0, 1.0, 3.0))
	is.True(!Less(1.0, 4.0, 3.0))
}

func TestLessOrEqual(t *testing.T) {
	is := is.New(t)

	is.True(LessOrEqual(1.0, 1.0))
	is.True(LessOrEqual(1.0, 2.0))
	is.True(!LessOrEqual(2.0, 1.0))

	is.True(LessOrEqual(1.0, 1.0, 3.0))
	is.True(LessOrEqual(1.0, 2.0, 3.0))
	is.True(!LessOrEqual(1.0, 4.0, 3.0))
}

func TestToNumeric(t *testing.T) {
	is := is.New(t)

	v, err := ToNumeric("1")
	is.NoErr(err)
	is.Equal(v, int64(1))

	v, err = ToNumeric("1.5")
	is.NoErr(err)
	is.Equal(v, 1.5)

	v, err = ToNumeric(2.0)
	is.NoErr(err)
	is.Equal(v, 2.0)

	_, err = ToNumeric("zucchini")
	is.True(errors.Is(err, ErrMalformedRule))
}

func TestMerge(t *testing.T) {
	is := is.New(t)

	is.Equal(Merge(), []any{})
	is.Equal(Merge([]any{1.0, 2.0}, []any{3.0, 4.0}), []any{1.0, 2.0, 3.0, 4.0})
	is.Equal(Merge(1.0, 2.0, []any{3.0, 4.0}), []any{1.0, 2.0, 3.0, 4.0})
	is.Equal(Merge("vin", []any{}), []any{"vin"})
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{"apple", "apple"},
		{1.0, "1"},
		{1.5, "1.5"},
		{int64(7), "7"},
	}

	for _, c := range cases {
		if got := stringify(c.in); got != c.want {
			t.Errorf("stringify(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
