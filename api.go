package jmespath

// Expression is a compiled JMESPath query, reusable across many Search
// calls against different documents (spec §4.8, mirroring the teacher's
// jsonpath.go Parse/(*Expression).Match split). Callers own the lifetime
// of an *Expression; nothing here caches compiled expressions on their
// behalf (spec §1 Non-goals).
type Expression struct {
	root Selector
	src  string
}

// String returns the original expression text this Expression was
// compiled from.
func (e *Expression) String() string {
	return e.src
}

// Search evaluates the compiled expression against root, returning the
// first EvalError observed during the walk, if any, as its error (spec
// §4.8's "success" variant).
func (e *Expression) Search(root Value) (Value, error) {
	v, evalErr := e.SearchError(root)
	if evalErr != nil {
		return v, evalErr
	}
	return v, nil
}

// SearchError evaluates the compiled expression against root and returns
// both the result and the first EvalError observed during the walk, if
// any (spec §4.9: "observe both the first error and a null result").
// Evaluation never aborts early on an EvalError; the returned Value is
// whatever the tree walk produced with the erroring branch yielding null.
func (e *Expression) SearchError(root Value) (Value, *EvalError) {
	arena := NewArena()
	if root == nil {
		root = Null
	}
	v, _ := e.root.evaluate(arena, root)
	return v, arena.Err()
}

// Search compiles expression and evaluates it against root in one step
// (spec §4.8). Prefer Compile when the same expression will run against
// many documents.
func Search(root Value, expression string) (Value, error) {
	expr, err := Compile(expression)
	if err != nil {
		return Null, err
	}
	return expr.Search(root)
}

// SearchError compiles expression and evaluates it against root,
// surfacing syntax and evaluation errors separately (spec §4.9's
// "success and error-code variants").
func SearchError(root Value, expression string) (Value, *SyntaxError, *EvalError) {
	expr, err := Compile(expression)
	if err != nil {
		syn, _ := err.(*SyntaxError)
		return Null, syn, nil
	}
	v, evalErr := expr.SearchError(root)
	return v, nil, evalErr
}
