package jmespath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jmespath "github.com/sanity-io/go-jmespath"
)

func searchEvalErr(t *testing.T, data, expr string) *jmespath.EvalError {
	t.Helper()
	v, synErr, evalErr := jmespath.SearchError(doc(t, data), expr)
	require.Nil(t, synErr, "parsing %q", expr)
	require.NotNil(t, evalErr, "evaluating %q should set an error", expr)
	assert.True(t, v.IsNull(), "%q should also yield null, got %s", expr, jsonText(t, v))
	return evalErr
}

func TestSortBy(t *testing.T) {
	assertSearch(t, `{"xs": [{"k": "b"}, {"k": "a"}]}`,
		"sort_by(xs, &k)", `[{"k": "a"}, {"k": "b"}]`)
	assertSearch(t, `{"xs": [{"n": 3}, {"n": 1}, {"n": 2}]}`,
		"sort_by(xs, &n)", `[{"n": 1}, {"n": 2}, {"n": 3}]`)
	assertSearch(t, `{"xs": [{"a": {"b": 2}}, {"a": {"b": 1}}]}`,
		"sort_by(xs, &a.b)", `[{"a": {"b": 1}}, {"a": {"b": 2}}]`)
	assertSearch(t, `{"xs": []}`, "sort_by(xs, &k)", `[]`)

	// the sort is stable: equal keys keep input order
	assertSearch(t, `{"xs": [{"k": 1, "id": "x"}, {"k": 0, "id": "y"}, {"k": 1, "id": "z"}]}`,
		"sort_by(xs, &k)[*].id", `["y", "x", "z"]`)
}

func TestSortBy_doesNotMutateInput(t *testing.T) {
	root := doc(t, `{"xs": [3, 1, 2]}`)
	_, err := jmespath.Search(root, "sort_by(xs, &@)")
	require.NoError(t, err)
	xs, _ := root.Get("xs")
	assert.True(t, doc(t, `[3, 1, 2]`).Equal(xs), "input document must not be mutated")
}

func TestSortBy_errors(t *testing.T) {
	evalErr := searchEvalErr(t, `{"xs": 1}`, "sort_by(xs, &k)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)

	evalErr = searchEvalErr(t, `{"xs": []}`, "sort_by(xs)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)

	evalErr = searchEvalErr(t, `{"xs": [1]}`, "sort_by(xs, k)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)

	// mixed-type keys are a misuse, not a silent misordering
	evalErr = searchEvalErr(t, `{"xs": [{"k": 1}, {"k": "a"}]}`, "sort_by(xs, &k)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestSort(t *testing.T) {
	assertSearch(t, `{"xs": [3, 1, 2]}`, "sort(xs)", `[1, 2, 3]`)
	assertSearch(t, `{"xs": ["b", "a", "c"]}`, "sort(xs)", `["a", "b", "c"]`)

	evalErr := searchEvalErr(t, `{"xs": [1, "a"]}`, "sort(xs)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestLength(t *testing.T) {
	assertSearch(t, `{"s": "héllo"}`, "length(s)", `5`)
	assertSearch(t, `{"a": [1, 2, 3]}`, "length(a)", `3`)
	assertSearch(t, `{"o": {"a": 1, "b": 2}}`, "length(o)", `2`)

	evalErr := searchEvalErr(t, `{"n": 5}`, "length(n)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
	evalErr = searchEvalErr(t, `{}`, "length(`1`, `2`)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestKeysValues(t *testing.T) {
	assertSearch(t, `{"o": {"z": 1, "a": 2}}`, "keys(o)", `["z", "a"]`)
	assertSearch(t, `{"o": {"z": 1, "a": 2}}`, "values(o)", `[1, 2]`)
	assertSearch(t, `{"o": {}}`, "keys(o)", `[]`)

	evalErr := searchEvalErr(t, `{"o": [1]}`, "keys(o)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestToString(t *testing.T) {
	assertSearch(t, `{"s": "x"}`, "to_string(s)", `"x"`)
	assertSearch(t, `{"n": 2.5}`, "to_string(n)", `"2.5"`)
	assertSearch(t, `{"a": [1, null]}`, "to_string(a)", `"[1,null]"`)
	assertSearch(t, `{"o": {"a": 1}}`, "to_string(o)", `"{\"a\":1}"`)
}

func TestToNumber(t *testing.T) {
	assertSearch(t, `{"n": 2.5}`, "to_number(n)", `2.5`)
	assertSearch(t, `{"s": "42"}`, "to_number(s)", `42`)
	assertSearch(t, `{"s": "nope"}`, "to_number(s)", `null`)
	assertSearch(t, `{"b": true}`, "to_number(b)", `null`)
}

func TestType(t *testing.T) {
	assertSearch(t, `{"v": null}`, "type(v)", `"null"`)
	assertSearch(t, `{"v": true}`, "type(v)", `"boolean"`)
	assertSearch(t, `{"v": 1}`, "type(v)", `"number"`)
	assertSearch(t, `{"v": "x"}`, "type(v)", `"string"`)
	assertSearch(t, `{"v": []}`, "type(v)", `"array"`)
	assertSearch(t, `{"v": {}}`, "type(v)", `"object"`)
}

func TestContains(t *testing.T) {
	assertSearch(t, `{"s": "foobar"}`, "contains(s, 'oba')", `true`)
	assertSearch(t, `{"s": "foobar"}`, "contains(s, 'xyz')", `false`)
	assertSearch(t, `{"a": [1, 2, 3]}`, "contains(a, `2`)", `true`)
	assertSearch(t, `{"a": [1, 2, 3]}`, "contains(a, `5`)", `false`)
	assertSearch(t, `{"a": [[1], [2]]}`, "contains(a, `[2]`)", `true`)

	evalErr := searchEvalErr(t, `{"n": 5}`, "contains(n, `1`)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestReverse(t *testing.T) {
	assertSearch(t, `{"a": [1, 2, 3]}`, "reverse(a)", `[3, 2, 1]`)
	assertSearch(t, `{"s": "abc"}`, "reverse(s)", `"cba"`)

	evalErr := searchEvalErr(t, `{"n": 5}`, "reverse(n)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestMerge(t *testing.T) {
	assertSearch(t, `{"a": {"x": 1, "y": 2}, "b": {"y": 3, "z": 4}}`,
		"merge(a, b)", `{"x": 1, "y": 3, "z": 4}`)
	got := search(t, `{"a": {"x": 1}, "b": {"z": 2, "y": 3}}`, "merge(a, b)")
	assert.Equal(t, []string{"x", "z", "y"}, got.ObjectKeys())

	evalErr := searchEvalErr(t, `{"a": {}, "b": 1}`, "merge(a, b)")
	assert.Equal(t, jmespath.ErrInvalidArgument, evalErr.Code)
}

func TestNotNull(t *testing.T) {
	assertSearch(t, `{"b": 2}`, "not_null(a, b, c)", `2`)
	assertSearch(t, `{"a": 1, "b": 2}`, "not_null(a, b)", `1`)
	assertSearch(t, `{}`, "not_null(a, b)", `null`)
}

func TestRegisterFunction(t *testing.T) {
	jmespath.RegisterFunction("answer", func(arena *jmespath.Arena, input jmespath.Value, args []jmespath.Selector) (jmespath.Value, *jmespath.EvalError) {
		return jmespath.Number(42), nil
	})
	assertSearch(t, `{}`, "answer()", `42`)
}

func TestFunction_insideProjection(t *testing.T) {
	assertSearch(t, `{"xs": [{"a": [1, 2]}, {"a": [3]}]}`,
		"xs[*].length(a)", `[2, 1]`)
}
