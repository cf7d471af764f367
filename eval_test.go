package jmespath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jmespath "github.com/sanity-io/go-jmespath"
)

func TestEval_nestedProjections(t *testing.T) {
	data := `{"groups": [
		{"members": [{"name": "a"}, {"name": "b"}]},
		{"members": [{"name": "c"}]}
	]}`
	assertSearch(t, data, "groups[*].members[*].name", `[["a", "b"], ["c"]]`)
	assertSearch(t, data, "groups[].members[].name", `["a", "b", "c"]`)
}

func TestEval_flattenOneLevelOnly(t *testing.T) {
	assertSearch(t, `[[1, [2, 3]], [4]]`, "[]", `[1, [2, 3], 4]`)
	assertSearch(t, `[[1, [2, 3]], [4]]`, "[][]", `[1, 2, 3, 4]`)
}

func TestEval_flattenPassesScalarsThrough(t *testing.T) {
	assertSearch(t, `[1, [2], "x", {"a": 3}]`, "[]", `[1, 2, "x", {"a": 3}]`)
}

func TestEval_objectProjectionOrder(t *testing.T) {
	assertSearch(t, `{"z": {"v": 1}, "a": {"v": 2}, "m": {"v": 3}}`, "*.v", `[1, 2, 3]`)
}

func TestEval_projectionThenSlice(t *testing.T) {
	// a slice after a projection fuses into the projection's rhs
	assertSearch(t, `[{"x": [1, 2, 3]}, {"x": [4, 5, 6]}]`,
		"[*].x[0:2]", `[[1, 2], [4, 5]]`)
	// ...while a pipe slices the projected array itself
	assertSearch(t, `[{"x": [1, 2, 3]}, {"x": [4, 5, 6]}]`,
		"[*].x | [0:1]", `[[1, 2, 3]]`)
}

func TestEval_filterThenChain(t *testing.T) {
	data := `{"servers": [
		{"state": "up", "host": {"name": "a"}},
		{"state": "down", "host": {"name": "b"}},
		{"state": "up", "host": {"name": "c"}}
	]}`
	assertSearch(t, data, "servers[?state == 'up'].host.name", `["a", "c"]`)
	assertSearch(t, data, "servers[?state == 'up'] | [0].host.name", `"a"`)
}

func TestEval_projectionSkipsNullsButSliceKeepsThem(t *testing.T) {
	// null results drop out of the projection's output
	assertSearch(t, `[{"a": 1}, {"b": 2}]`, "[*].a", `[1]`)
	// a plain slice copies elements verbatim, nulls included
	assertSearch(t, `[null, 1, null]`, "[0:3]", `[null, 1, null]`)
}

func TestEval_quotedIdentifierChain(t *testing.T) {
	assertSearch(t, `{"a.b": {"c d": 1}}`, `"a.b"."c d"`, `1`)
}

func TestEval_pipeChains(t *testing.T) {
	assertSearch(t, `{"a": {"b": {"c": 7}}}`, "a | b | c", `7`)
	assertSearch(t, `[[1, 2], [3, 4]]`, "[*] | [1] | [0]", `3`)
}

func TestEval_multiSelectInsideHash(t *testing.T) {
	assertSearch(t, `{"a": 1, "b": 2, "c": 3}`,
		"{first: a, rest: [b, c]}", `{"first": 1, "rest": [2, 3]}`)
	assertSearch(t, `{"a": 1, "b": 2}`,
		"{outer: {inner: a}}", `{"outer": {"inner": 1}}`)
}

func TestEval_bareMultiSelectProjects(t *testing.T) {
	// without a dot, [a, b] after an expression applies per element
	assertSearch(t, `{"xs": [{"a": 1, "b": 2}, {"a": 3, "b": 4}]}`,
		"xs[a, b]", `[[1, 2], [3, 4]]`)
	// with a dot it is a plain multi-select against the current value
	assertSearch(t, `{"xs": {"a": 1, "b": 2}}`, "xs.[a, b]", `[1, 2]`)
}

func TestEval_literalStopsLookup(t *testing.T) {
	// a literal ignores its input entirely
	assertSearch(t, `{"x": 1}`, "`\"fixed\"` ", `"fixed"`)
	assertSearch(t, `null`, "`2` ", `2`)
}

func TestArena_tracksAllocations(t *testing.T) {
	arena := jmespath.NewArena()
	assert.Equal(t, 0, arena.Allocations())
	arena.NewArray()
	arena.NewObject()
	assert.Equal(t, 2, arena.Allocations())
	assert.Nil(t, arena.Err())
}

func TestSearch_resultAliasesInput(t *testing.T) {
	// a plain sub-value pick returns the input's own node, not a copy
	root := doc(t, `{"a": {"b": [1, 2]}}`)
	got, err := jmespath.Search(root, "a.b")
	require.NoError(t, err)
	inner, _ := root.Get("a")
	want, _ := inner.Get("b")
	assert.Same(t, want, got)
}
