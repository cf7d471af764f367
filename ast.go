package jmespath

// Selector is the evaluator-node interface every compiled AST node
// implements (spec §3 "Selector tree", §4.4). addChild is only
// meaningful on composite nodes; leaf nodes accept it as a no-op so the
// parser can treat every node uniformly while building the tree.
type Selector interface {
	position() int
	addChild(child Selector)
	evaluate(arena *Arena, input Value) (Value, *EvalError)
}

// base is embedded by every node to carry its source position and give
// leaf nodes a no-op addChild, matching the teacher's ast.go pattern of
// one small struct per kind plus a shared position field.
type base struct {
	pos int
}

func (b *base) position() int     { return b.pos }
func (b *base) addChild(Selector) {}

// subExpressionNode threads a value through an ordered list of children,
// left to right (spec §4.4 item 1). It is also the parser's "current
// right-hand chain" container during projection fusion (spec §4.7).
type subExpressionNode struct {
	base
	children []Selector
}

func newSubExpression(pos int) *subExpressionNode {
	return &subExpressionNode{base: base{pos: pos}}
}

func (n *subExpressionNode) addChild(child Selector) {
	n.children = append(n.children, child)
}

// identifierNode looks up a named field (spec §4.4 item 2).
type identifierNode struct {
	base
	name string
}

// literalNode always returns its captured JSON literal (spec §4.4 item 3).
type literalNode struct {
	base
	value Value
}

// indexNode selects a single array element by position, supporting
// negative indices (spec §4.4 item 4).
type indexNode struct {
	base
	index int
}

// sliceNode applies a Slice to an array input (spec §4.4 item 5).
type sliceNode struct {
	base
	slice Slice
}

// fusable is implemented by every selector kind that §4.7's projection
// fusion can retroactively attach an lhs/rhs-chain to after the parser
// has already built it as a bare trigger node (list/object/flatten
// projection, filter). pipeNode is not one: parseExpression builds it
// with its lhs and chain in place.
type fusable interface {
	Selector
	setLHS(Selector)
	setChain(*subExpressionNode)
}

// listProjectionNode iterates array elements, applying its right-hand
// chain to each and dropping null results (spec §4.4 item 6).
type listProjectionNode struct {
	base
	lhs   Selector
	chain *subExpressionNode
}

func (n *listProjectionNode) setLHS(s Selector)             { n.lhs = s }
func (n *listProjectionNode) setChain(c *subExpressionNode) { n.chain = c }

// objectProjectionNode iterates object values in insertion order (spec
// §4.4 item 7).
type objectProjectionNode struct {
	base
	lhs   Selector
	chain *subExpressionNode
}

func (n *objectProjectionNode) setLHS(s Selector)             { n.lhs = s }
func (n *objectProjectionNode) setChain(c *subExpressionNode) { n.chain = c }

// flattenProjectionNode splices one level of nested arrays before
// projecting (spec §4.4 item 8).
type flattenProjectionNode struct {
	base
	lhs   Selector
	chain *subExpressionNode
}

func (n *flattenProjectionNode) setLHS(s Selector)             { n.lhs = s }
func (n *flattenProjectionNode) setChain(c *subExpressionNode) { n.chain = c }

// pipeNode threads lhs's result through its rhs chain exactly once,
// without iterating — this is what stops projection fusion (spec §4.4
// item 9, §4.7).
type pipeNode struct {
	base
	lhs   Selector
	chain *subExpressionNode
}

// comparator names a filter's relational operator (spec §4.4 item 10).
type comparator int

const (
	cmpEQ comparator = iota
	cmpNE
	cmpLT
	cmpLE
	cmpGT
	cmpGE
)

func (c comparator) String() string {
	switch c {
	case cmpEQ:
		return "=="
	case cmpNE:
		return "!="
	case cmpLT:
		return "<"
	case cmpLE:
		return "<="
	case cmpGT:
		return ">"
	case cmpGE:
		return ">="
	default:
		return "?"
	}
}

// filterNode keeps array elements for which cmp(cmpLeft(elem),
// cmpRight(elem)) is true (spec §4.4 item 10). Like the other
// projections, `[?...]` is itself a projection-introducing token (spec
// §4.7): lhs is the array being filtered and chain is the fused
// right-hand chain applied to each kept element, dropping null results —
// exactly the list-projection shape, with a filter test gating which
// elements reach the chain. A nil cmpRight marks a bare `[?expr]`
// filter, which keeps the element when cmpLeft(elem) is truthy.
type filterNode struct {
	base
	lhs      Selector
	cmpLeft  Selector
	cmpRight Selector
	operator comparator
	chain    *subExpressionNode
}

func (n *filterNode) setLHS(s Selector)             { n.lhs = s }
func (n *filterNode) setChain(c *subExpressionNode) { n.chain = c }

// multiSelectListNode builds a new array from each child evaluated
// against the same input (spec §4.4 item 11).
type multiSelectListNode struct {
	base
	children []Selector
}

func (n *multiSelectListNode) addChild(child Selector) {
	n.children = append(n.children, child)
}

// nameExpressionNode returns a singleton object `{name: child(input)}`
// (spec §4.4 item 13). spec §9 flags the reference source's declared
// parameter list for this node as mismatched with its initializer list;
// this implementation follows the prose semantics in §4.4 item 13, not
// that mismatch. A multi-select-hash's key slots are exactly this shape
// (spec: "used inside multi-select-hash key slots"), so multiSelectHashNode
// below is built directly out of nameExpressionNode entries rather than
// duplicating the singleton-object construction itself.
type nameExpressionNode struct {
	base
	name  string
	child Selector
}

// multiSelectHashNode builds a new object mapping each declared key to
// its child evaluated against the input, in declaration order (spec
// §4.4 item 12), by merging the singleton object each nameExpressionNode
// entry produces.
type multiSelectHashNode struct {
	base
	entries []*nameExpressionNode
}

// functionCallNode delegates to the function registry (spec §4.4 item 14,
// §4.3).
type functionCallNode struct {
	base
	name string
	fn   Function
	args []Selector
}

func (n *functionCallNode) addChild(child Selector) {
	n.args = append(n.args, child)
}

// exprRefNode implements JMESPath's `&expression` expression-reference
// argument (SPEC_FULL.md §5): instead of evaluating expr against the
// current input immediately, it hands the function a deferred Selector
// the function can apply per-element later (exactly what sort_by's
// key-expression argument needs).
type exprRefNode struct {
	base
	expr Selector
}

func (n *exprRefNode) evaluate(_ *Arena, _ Value) (Value, *EvalError) {
	// An expression-reference is never evaluated directly; function
	// implementations unwrap their raw Selector argument via asExprRef
	// (functions.go) and call n.expr.evaluate themselves, once per
	// element, instead of once against the call site's input.
	return Null, nil
}

func asExprRef(s Selector) (Selector, bool) {
	if ref, ok := s.(*exprRefNode); ok {
		return ref.expr, true
	}
	return nil, false
}

// currentNode is `@`, returning the input unchanged.
type currentNode struct {
	base
}

func (n *currentNode) evaluate(_ *Arena, input Value) (Value, *EvalError) {
	return input, nil
}
