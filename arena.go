package jmespath

// Arena owns every Value materialized while evaluating one expression
// (spec §3 "Scratch arena", §4.1). It doesn't do manual memory
// management (Go's GC already owns that); what it enforces is the
// ownership contract spec §5 describes: a Value returned from Search
// either aliases part of the input document, or was built during this
// call and is only guaranteed to stay alive for the arena's lifetime.
// Selectors should allocate new Arrays/Objects through an Arena rather
// than constructing them ad hoc, so that lifetime is documented
// consistently at every allocation site.
type Arena struct {
	count int
	err   *EvalError
}

// NewArena returns a fresh Arena scoped to a single evaluate call.
func NewArena() *Arena {
	return &Arena{}
}

// recordError keeps the first EvalError raised during an evaluation walk
// (spec §4.9: "observe both the first error and a null result"). Later
// errors from sibling branches of the tree are not swallowed — they still
// cause their own selector to yield null — but only the first is
// reported back through SearchError, matching the teacher's single
// `*ParseError` return convention generalized to eval time.
func (a *Arena) recordError(err *EvalError) {
	if err != nil && a.err == nil {
		a.err = err
	}
}

// Err returns the first evaluation error recorded during this arena's
// lifetime, or nil if evaluation completed without one.
func (a *Arena) Err() *EvalError {
	return a.err
}

// NewArray allocates a new, empty array owned by the arena.
func (a *Arena) NewArray() *Array {
	a.count++
	return NewArray()
}

// NewObject allocates a new, empty object owned by the arena.
func (a *Arena) NewObject() *Object {
	a.count++
	return NewObject()
}

// Allocations reports how many intermediate values this arena has
// produced so far; used only by tests to assert selectors are actually
// routing allocations through the arena instead of around it.
func (a *Arena) Allocations() int {
	return a.count
}
