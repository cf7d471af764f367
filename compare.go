package jmespath

// compare.go implements the relational contract filter selectors need
// (spec §4.4 item 10). The teacher's equivalent (match.go's applyFilter)
// delegates to an internal "template" subpackage that was not part of
// this retrieval, so these are a from-scratch rewrite of the same
// six-relation contract its call sites assume: a bad pairing (e.g.
// ordering two strings) reports ok=false rather than an error, letting
// the caller treat it as JMESPath's "undefined" result (spec §4.4 item
// 10: "excluded" from the filter, never an error).

// equalValues implements == : any two Values, structural comparison.
func equalValues(a, b Value) bool {
	return a.Equal(b)
}

// notEqualValues implements !=.
func notEqualValues(a, b Value) bool {
	return !a.Equal(b)
}

// lessThan implements <. ok is false unless both operands are numbers.
func lessThan(a, b Value) (result, ok bool) {
	c, ok := a.Compare(b)
	return ok && c < 0, ok
}

// lessOrEqual implements <=.
func lessOrEqual(a, b Value) (result, ok bool) {
	c, ok := a.Compare(b)
	return ok && c <= 0, ok
}

// greaterThan implements >.
func greaterThan(a, b Value) (result, ok bool) {
	c, ok := a.Compare(b)
	return ok && c > 0, ok
}

// greaterOrEqual implements >=.
func greaterOrEqual(a, b Value) (result, ok bool) {
	c, ok := a.Compare(b)
	return ok && c >= 0, ok
}
