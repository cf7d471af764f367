package jmespath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNotAString         = errors.New("quoted identifier did not decode to a JSON string")
	errMalformedRawString = errors.New("malformed raw string literal")
)

// Parser converts JMESPath text into a tree of Selectors (spec §3
// "Parser scratch state", §4.6/§4.7). It is grounded on the teacher's
// scanner.go (rune-at-a-time read/unread, position tracking) for lexer
// style, but the grammar itself is rewritten as the single-pass,
// stack-driven machine spec §4.6/§4.7 describes (and corroborated by
// original_source/jmespath.hpp's path_state/state_stack_ triple), not
// the teacher's own recursive-descent parser.go (spec §9 explicitly
// warns against copying that algorithm).
//
// The three parallel stacks spec §3 names are realized here as:
//   - the state stack is the Go call stack of parseExpression/parseChain/
//     parseUnit, recursing exactly where the grammar recurses;
//   - the selector stack is parseChain's chain/proj/rhs trio: chain is
//     the stack bottom (the sub-expression under assembly), and when a
//     projection is active, proj/rhs are the stack top the next plain
//     selectors are appended to;
//   - the offset stack is implicit in each nested construct's own loop
//     (parseFunctionCall, parseMultiSelectList, parseMultiSelectHash):
//     the point where it starts accumulating children is the "offset",
//     and the closing delimiter is where it splices the accumulated
//     children back into the enclosing selector — the same push-offset/
//     build-on-close discipline spec §4.7 describes, without a second
//     literal slice to index into.
type Parser struct {
	src      string
	s        *Scanner
	tok      Token
	lit      string
	pos      int
	depth    int
	maxDepth int
}

// defaultMaxDepth bounds nested sub-expression recursion (SPEC_FULL.md
// §2 Ambient Stack: JMESPath has no descendant operator to bound unlike
// the teacher's `..`, but its sub-expressions nest arbitrarily deep, so
// parsing needs its own bound).
const defaultMaxDepth = 256

// Option configures Compile (SPEC_FULL.md §2, mirroring the teacher's
// small-surface NewParser/NewScanner constructors rather than a config
// struct or file).
type Option func(*parserConfig)

type parserConfig struct {
	maxDepth int
}

// WithMaxDepth overrides the default nesting-depth bound a compiled
// expression may use.
func WithMaxDepth(n int) Option {
	return func(c *parserConfig) { c.maxDepth = n }
}

// NewParser returns a new Parser over src.
func NewParser(src string) *Parser {
	return &Parser{src: src, s: NewScanner(strings.NewReader(src)), maxDepth: defaultMaxDepth}
}

func (p *Parser) next() {
	p.tok, p.lit, p.pos = p.s.Scan()
	for p.tok == tokWhitespace {
		p.tok, p.lit, p.pos = p.s.Scan()
	}
}

func (p *Parser) lineCol(pos int) (line, col int) {
	line, col = 1, 1
	for i, r := range p.src {
		if i >= pos {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (p *Parser) errorf(code ErrorCode, format string, args ...interface{}) *SyntaxError {
	line, col := p.lineCol(p.pos)
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &SyntaxError{Code: code, Message: msg, Pos: p.pos, Line: line, Col: col}
}

// Compile parses expression into a reusable *Expression (spec §4.8's
// entry point, generalized with functional options per SPEC_FULL.md §2).
func Compile(expression string, opts ...Option) (*Expression, error) {
	cfg := parserConfig{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := NewParser(expression)
	p.maxDepth = cfg.maxDepth
	p.next()
	if p.tok == tokEOF {
		return nil, p.errorf(ErrUnexpectedEndOfInput, "empty expression")
	}
	root, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if p.tok != tokEOF {
		return nil, p.errorf(ErrUnidentifiedError, "unexpected token %s after expression", p.tok)
	}
	return &Expression{root: root, src: expression}, nil
}

// Parse is Compile with default options, mirroring the teacher's
// top-level Parse(src string) (*Expression, error).
func Parse(expression string) (*Expression, error) {
	return Compile(expression)
}

// MustParse parses expression and panics on failure, mirroring the
// teacher's MustParse convenience wrapper.
func MustParse(expression string) *Expression {
	expr, err := Compile(expression)
	if err != nil {
		panic(fmt.Sprintf("jmespath: could not compile %q: %s", expression, err))
	}
	return expr
}

func (p *Parser) enterDepth() (*SyntaxError, func()) {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorf(ErrUnidentifiedError, "expression exceeds maximum nesting depth (%d)", p.maxDepth), func() { p.depth-- }
	}
	return nil, func() { p.depth-- }
}

func inSet(set []Token, tok Token) bool {
	for _, t := range set {
		if t == tok {
			return true
		}
	}
	return false
}

// collapse turns an accumulated chain into the Selector a projection's
// lhs should wrap: a single-child chain collapses to that child, a
// multi-child chain stays a subExpressionNode (its own evaluate already
// threads left-to-right, which is exactly what an lhs pipeline needs).
func collapse(chain *subExpressionNode) Selector {
	if len(chain.children) == 1 {
		return chain.children[0]
	}
	return chain
}

func singleton(sel Selector) *subExpressionNode {
	c := newSubExpression(sel.position())
	c.addChild(sel)
	return c
}

// parseExpression parses one full pipe-composed expression: a fusion-
// aware chain, then zero or more `| chain` continuations (spec §4.7:
// "until a | is seen, which terminates the projection and starts a
// fresh sub-expression").
func (p *Parser) parseExpression(stop []Token) (Selector, error) {
	left, err := p.parseChain(stop)
	if err != nil {
		return nil, err
	}
	var result Selector = left
	for p.tok == tokPipe {
		pos := p.pos
		p.next()
		right, err := p.parseChain(stop)
		if err != nil {
			return nil, err
		}
		result = &pipeNode{base: base{pos: pos}, lhs: result, chain: right}
	}
	return result, nil
}

// parseChain parses one pipe-free chain: a primary, then a run of
// `.primary` / bare-bracket continuations, implementing §4.7's
// projection fusion the way the selector stack does it: a
// projection-introducing token (`[*]`, `[]`, `[?...]`, `*`, bare
// `[a, b]`) wraps everything parsed so far in this chain as the new
// projection's lhs, and subsequent plain selectors accumulate on the
// projection's right-hand chain — until the next projection token wraps
// again, or a pipe / the enclosing construct's stop token ends the
// chain.
func (p *Parser) parseChain(stop []Token) (*subExpressionNode, error) {
	synErr, leave := p.enterDepth()
	defer leave()
	if synErr != nil {
		return nil, synErr
	}

	chain := newSubExpression(p.pos)
	var proj fusable
	var rhs *subExpressionNode
	finishProjection := func() {
		if proj != nil {
			proj.setChain(rhs)
			proj, rhs = nil, nil
		}
	}

	first := true
	for {
		if p.tok == tokEOF || p.tok == tokPipe || inSet(stop, p.tok) {
			if first {
				if p.tok == tokEOF {
					return nil, p.errorf(ErrUnexpectedEndOfInput, "unexpected end of input")
				}
				return nil, p.errorf(ErrExpectedIdentifier, "expected an expression, got %s", p.tok)
			}
			finishProjection()
			return chain, nil
		}

		dotted := first
		if !first {
			switch p.tok {
			case tokDot:
				p.next()
				if p.tok == tokEOF {
					return nil, p.errorf(ErrExpectedIdentifier, "expected identifier after '.'")
				}
				dotted = true
			case tokLBracket, tokFlatten:
				// bare bracket continues the chain without a dot
			default:
				return nil, p.errorf(ErrExpectedDot, "unexpected token %s in expression", p.tok)
			}
		}

		unit, isProj, seed, err := p.parseUnit(stop, !dotted)
		if err != nil {
			return nil, err
		}
		switch {
		case isProj:
			finishProjection()
			fused, ok := unit.(fusable)
			if !ok {
				return nil, p.errorf(ErrUnidentifiedError, "internal: projection trigger %T is not fusable", unit)
			}
			if first {
				fused.setLHS(&currentNode{base{unit.position()}})
			} else {
				fused.setLHS(collapse(chain))
			}
			chain = singleton(unit)
			proj = fused
			rhs = newSubExpression(p.pos)
			if seed != nil {
				rhs.addChild(seed)
			}
		case proj != nil:
			rhs.addChild(unit)
		default:
			chain.addChild(unit)
		}
		first = false
	}
}

// parseUnit parses exactly one primary/bracket/brace unit, reporting
// whether it is a projection-fusion trigger the caller must finish
// wiring an lhs/chain onto. bare is true when the unit is a bracket
// continuing a chain without a leading dot, which changes how a
// multi-select-list inside it binds (see parseBracketBody). seed, when
// non-nil, is a selector the caller must place first on the trigger's
// right-hand chain.
func (p *Parser) parseUnit(stop []Token, bare bool) (Selector, bool, Selector, error) {
	switch p.tok {
	case tokStar:
		pos := p.pos
		p.next()
		return &objectProjectionNode{base: base{pos: pos}}, true, nil, nil
	case tokFlatten:
		pos := p.pos
		p.next()
		return &flattenProjectionNode{base: base{pos: pos}}, true, nil, nil
	case tokLBracket:
		p.next()
		return p.parseBracketBody(stop, bare)
	case tokLBrace:
		p.next()
		node, err := p.parseMultiSelectHash()
		return node, false, nil, err
	default:
		sel, err := p.parsePrimaryLeaf(stop)
		return sel, false, nil, err
	}
}

// parseBracketBody parses the content of a `[...]` that has already had
// its opening bracket consumed, per spec §4.6's bracket production. A
// multi-select-list in a bare bracket (one continuing a chain without a
// dot, e.g. `xs[a, b]`) introduces a list projection carrying the
// multi-select on its right-hand chain, so the multi-select applies per
// element; after a dot (`.[a, b]`) or at the start of an expression it
// is a plain primary applied to the current value.
func (p *Parser) parseBracketBody(stop []Token, bare bool) (Selector, bool, Selector, error) {
	pos := p.pos
	switch {
	case p.tok == tokStar:
		p.next()
		if p.tok != tokRBracket {
			return nil, false, nil, p.errorf(ErrExpectedRightBracket, "expected ']' after '[*'")
		}
		p.next()
		return &listProjectionNode{base: base{pos: pos}}, true, nil, nil
	case p.tok == tokRBracket:
		p.next()
		return &flattenProjectionNode{base: base{pos: pos}}, true, nil, nil
	case p.tok == tokQuestion:
		p.next()
		left, err := p.parseExpression([]Token{tokEQ, tokNE, tokLT, tokLE, tokGT, tokGE, tokRBracket})
		if err != nil {
			return nil, false, nil, err
		}
		if p.tok == tokRBracket {
			// bare `[?expr]`: keep elements whose expr result is truthy
			p.next()
			return &filterNode{base: base{pos: pos}, cmpLeft: left}, true, nil, nil
		}
		op, err := p.parseComparator()
		if err != nil {
			return nil, false, nil, err
		}
		right, err := p.parseExpression([]Token{tokRBracket})
		if err != nil {
			return nil, false, nil, err
		}
		if p.tok != tokRBracket {
			return nil, false, nil, p.errorf(ErrExpectedRightBracket, "expected ']' to close filter")
		}
		p.next()
		return &filterNode{base: base{pos: pos}, cmpLeft: left, operator: op, cmpRight: right}, true, nil, nil
	case p.tok == tokColon || p.tok == tokInteger:
		sel, err := p.parseSliceOrIndex(pos)
		return sel, false, nil, err
	default:
		node, err := p.parseMultiSelectList()
		if err != nil {
			return nil, false, nil, err
		}
		if bare {
			return &listProjectionNode{base: base{pos: pos}}, true, node, nil
		}
		return node, false, nil, nil
	}
}

func (p *Parser) parseComparator() (comparator, error) {
	switch p.tok {
	case tokEQ:
		p.next()
		return cmpEQ, nil
	case tokNE:
		p.next()
		return cmpNE, nil
	case tokLT:
		p.next()
		return cmpLT, nil
	case tokLE:
		p.next()
		return cmpLE, nil
	case tokGT:
		p.next()
		return cmpGT, nil
	case tokGE:
		p.next()
		return cmpGE, nil
	default:
		return 0, p.errorf(ErrExpectedComparator, "expected comparator, got %s", p.tok)
	}
}

// parseSliceOrIndex disambiguates `[n]` (index) from `[a:b:c]` (slice)
// by the presence of a colon, per spec §3/§4.2.
func (p *Parser) parseSliceOrIndex(pos int) (Selector, error) {
	var start, end *int
	if p.tok == tokInteger {
		n, err := strconv.Atoi(p.lit)
		if err != nil {
			return nil, p.errorf(ErrInvalidNumber, "invalid integer %q", p.lit)
		}
		start = &n
		p.next()
	}
	if p.tok != tokColon {
		if start == nil {
			return nil, p.errorf(ErrExpectedIndex, "expected an index")
		}
		if p.tok != tokRBracket {
			return nil, p.errorf(ErrExpectedRightBracket, "expected ']' after index")
		}
		p.next()
		return &indexNode{base: base{pos: pos}, index: *start}, nil
	}
	p.next() // ':'
	if p.tok == tokInteger {
		n, err := strconv.Atoi(p.lit)
		if err != nil {
			return nil, p.errorf(ErrInvalidNumber, "invalid integer %q", p.lit)
		}
		end = &n
		p.next()
	}
	step := 0
	stepSpecified := false
	if p.tok == tokColon {
		p.next()
		if p.tok == tokInteger {
			n, err := strconv.Atoi(p.lit)
			if err != nil {
				return nil, p.errorf(ErrInvalidNumber, "invalid integer %q", p.lit)
			}
			if n == 0 {
				return nil, p.errorf(ErrInvalidNumber, "slice step must not be zero")
			}
			step = n
			stepSpecified = true
			p.next()
		}
	}
	if p.tok != tokRBracket {
		return nil, p.errorf(ErrExpectedRightBracket, "expected ']' to close slice")
	}
	p.next()
	return &sliceNode{base: base{pos: pos}, slice: NewSlice(start, end, step, stepSpecified)}, nil
}

// parseMultiSelectList parses `[expr, expr, ...]` content (opening
// bracket already consumed): spec §4.4 item 11.
func (p *Parser) parseMultiSelectList() (*multiSelectListNode, error) {
	pos := p.pos
	node := &multiSelectListNode{base: base{pos: pos}}
	for {
		elem, err := p.parseExpression([]Token{tokComma, tokRBracket})
		if err != nil {
			return nil, err
		}
		node.addChild(elem)
		switch p.tok {
		case tokComma:
			p.next()
			continue
		case tokRBracket:
			p.next()
			return node, nil
		default:
			return nil, p.errorf(ErrExpectedRightBracket, "expected ']' or ',' in multi-select-list")
		}
	}
}

// parseMultiSelectHash parses `{key: expr, ...}` content (opening brace
// already consumed): spec §4.4 item 12.
func (p *Parser) parseMultiSelectHash() (*multiSelectHashNode, error) {
	pos := p.pos
	node := &multiSelectHashNode{base: base{pos: pos}}
	for {
		keyPos := p.pos
		key, err := p.parseHashKey()
		if err != nil {
			return nil, err
		}
		if p.tok != tokColon {
			return nil, p.errorf(ErrExpectedColon, "expected ':' after multi-select-hash key")
		}
		p.next()
		val, err := p.parseExpression([]Token{tokComma, tokRBrace})
		if err != nil {
			return nil, err
		}
		node.entries = append(node.entries, &nameExpressionNode{base: base{pos: keyPos}, name: key, child: val})
		switch p.tok {
		case tokComma:
			p.next()
			continue
		case tokRBrace:
			p.next()
			return node, nil
		default:
			return nil, p.errorf(ErrExpectedRightBrace, "expected '}' or ',' in multi-select-hash")
		}
	}
}

func (p *Parser) parseHashKey() (string, error) {
	switch p.tok {
	case tokIdentifier:
		s := p.lit
		p.next()
		return s, nil
	case tokQuotedIdentifier:
		s, err := unquoteJSONString(p.lit)
		if err != nil {
			return "", p.errorf(ErrExpectedKey, "invalid quoted key: %s", err)
		}
		p.next()
		return s, nil
	default:
		return "", p.errorf(ErrExpectedKey, "expected a multi-select-hash key, got %s", p.tok)
	}
}

// parsePrimaryLeaf parses the leaf primaries: identifiers, quoted
// identifiers, raw strings, JSON literals, `@`, `&expr`, and function
// calls (spec §4.6). `*` and bracket/brace primaries are handled earlier
// by parseUnit, since those can be projection triggers.
func (p *Parser) parsePrimaryLeaf(stop []Token) (Selector, error) {
	pos := p.pos
	switch p.tok {
	case tokAt:
		p.next()
		return &currentNode{base{pos}}, nil
	case tokAmpersand:
		p.next()
		inner, err := p.parseExpression(stop)
		if err != nil {
			return nil, err
		}
		return &exprRefNode{base: base{pos: pos}, expr: inner}, nil
	case tokIdentifier:
		name := p.lit
		p.next()
		if p.tok == tokLParen {
			p.next()
			return p.parseFunctionCall(pos, name)
		}
		return &identifierNode{base: base{pos: pos}, name: name}, nil
	case tokQuotedIdentifier:
		name, err := unquoteJSONString(p.lit)
		if err != nil {
			return nil, p.errorf(ErrExpectedIdentifier, "invalid quoted identifier: %s", err)
		}
		p.next()
		return &identifierNode{base: base{pos: pos}, name: name}, nil
	case tokRawString:
		s, err := unquoteRawString(p.lit)
		if err != nil {
			return nil, p.errorf(ErrUnidentifiedError, "invalid raw string: %s", err)
		}
		p.next()
		return &literalNode{base: base{pos: pos}, value: String(s)}, nil
	case tokLiteral:
		v, err := ParseJSON(p.lit)
		if err != nil {
			return nil, p.errorf(ErrInvalidNumber, "invalid JSON literal: %s", err)
		}
		p.next()
		return &literalNode{base: base{pos: pos}, value: v}, nil
	case tokEOF:
		return nil, p.errorf(ErrUnexpectedEndOfInput, "unexpected end of input")
	default:
		return nil, p.errorf(ErrExpectedIdentifier, "expected identifier, got %s", p.tok)
	}
}

// parseFunctionCall parses the argument list of `name(...)` with the
// opening paren already consumed (spec §4.4 item 14, §4.3).
func (p *Parser) parseFunctionCall(pos int, name string) (Selector, error) {
	fn, ok := lookupFunction(name)
	if !ok {
		return nil, p.errorf(ErrFunctionNameNotFound, "unknown function %q", name)
	}
	call := &functionCallNode{base: base{pos: pos}, name: name, fn: fn}
	if p.tok == tokRParen {
		p.next()
		return call, nil
	}
	argStop := []Token{tokComma, tokRParen}
	for {
		var arg Selector
		var err error
		if p.tok == tokAmpersand {
			argPos := p.pos
			p.next()
			inner, ierr := p.parseExpression(argStop)
			if ierr != nil {
				return nil, ierr
			}
			arg = &exprRefNode{base: base{pos: argPos}, expr: inner}
		} else {
			arg, err = p.parseExpression(argStop)
			if err != nil {
				return nil, err
			}
		}
		call.addChild(arg)
		switch p.tok {
		case tokComma:
			p.next()
			continue
		case tokRParen:
			p.next()
			return call, nil
		default:
			return nil, p.errorf(ErrExpectedRightParen, "expected ')' or ',' in argument list")
		}
	}
}

// unquoteJSONString resolves a quoted-identifier token's literal text
// (which still includes its surrounding double quotes) by parsing it as
// a JSON string (spec §4.6: "Quoted identifier... parsed as a JSON
// value" for escape handling purposes).
func unquoteJSONString(lit string) (string, error) {
	v, err := ParseJSON(lit)
	if err != nil {
		return "", err
	}
	if !v.IsString() {
		return "", errNotAString
	}
	return v.String(), nil
}

// unquoteRawString resolves a raw-string token's literal text (still
// including its surrounding single quotes) per spec §4.6: `\` protects
// only the following byte, with no further (JSON) unescaping.
func unquoteRawString(lit string) (string, error) {
	if len(lit) < 2 {
		return "", errMalformedRawString
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}
