package jmespath

// eval.go holds evaluate() for the selector kinds declared in ast.go
// that don't carry their own one-liner in ast.go already (currentNode,
// exprRefNode). Dispatch shape is grounded on the teacher's match.go
// process() top-level type switch; every case body below is rewritten
// for JMESPath selector semantics (spec §4.4) instead of JSONPath
// matching.

func (n *subExpressionNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	cur := input
	for _, child := range n.children {
		v, _ := child.evaluate(arena, cur)
		cur = v
	}
	return cur, nil
}

// evaluate implements the "implicit projection" fallback spec §4.5
// calls out: an identifier applied to an array retrieves the member from
// each element that has it, skipping the rest, instead of erroring.
func (n *identifierNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	if input == nil {
		return Null, nil
	}
	switch input.Kind() {
	case KindObject:
		if v, ok := input.Get(n.name); ok {
			return v, nil
		}
		return Null, nil
	case KindArray:
		result := arena.NewArray()
		for i := 0; i < input.Size(); i++ {
			elem := input.At(i)
			if elem == nil || !elem.IsObject() {
				continue
			}
			if v, ok := elem.Get(n.name); ok {
				result.Append(v)
			}
		}
		return result, nil
	default:
		return Null, nil
	}
}

func (n *literalNode) evaluate(_ *Arena, _ Value) (Value, *EvalError) {
	return n.value, nil
}

func (n *indexNode) evaluate(_ *Arena, input Value) (Value, *EvalError) {
	if input == nil || !input.IsArray() {
		return Null, nil
	}
	return input.At(n.index), nil
}

func (n *sliceNode) evaluate(_ *Arena, input Value) (Value, *EvalError) {
	if input == nil || !input.IsArray() {
		return Null, nil
	}
	return n.slice.Apply(input), nil
}

func (n *listProjectionNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	lhs, _ := n.lhs.evaluate(arena, input)
	if lhs == nil || !lhs.IsArray() {
		return Null, nil
	}
	result := arena.NewArray()
	for i := 0; i < lhs.Size(); i++ {
		v, _ := n.chain.evaluate(arena, lhs.At(i))
		if v == nil || v.IsNull() {
			continue
		}
		result.Append(v)
	}
	return result, nil
}

func (n *objectProjectionNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	lhs, _ := n.lhs.evaluate(arena, input)
	if lhs == nil || !lhs.IsObject() {
		return Null, nil
	}
	result := arena.NewArray()
	for _, key := range lhs.ObjectKeys() {
		member, _ := lhs.Get(key)
		v, _ := n.chain.evaluate(arena, member)
		if v == nil || v.IsNull() {
			continue
		}
		result.Append(v)
	}
	return result, nil
}

func (n *flattenProjectionNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	lhs, _ := n.lhs.evaluate(arena, input)
	if lhs == nil || !lhs.IsArray() {
		return Null, nil
	}
	flat := arena.NewArray()
	for i := 0; i < lhs.Size(); i++ {
		elem := lhs.At(i)
		if elem != nil && elem.IsArray() {
			for j := 0; j < elem.Size(); j++ {
				flat.Append(elem.At(j))
			}
		} else {
			flat.Append(elem)
		}
	}
	result := arena.NewArray()
	for i := 0; i < flat.Size(); i++ {
		v, _ := n.chain.evaluate(arena, flat.At(i))
		if v == nil || v.IsNull() {
			continue
		}
		result.Append(v)
	}
	return result, nil
}

// evaluate threads lhs's result through the rhs chain exactly once —
// the operation that stops projection fusion (spec §4.4 item 9, §4.7).
func (n *pipeNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	lhs, _ := n.lhs.evaluate(arena, input)
	return n.chain.evaluate(arena, lhs)
}

func applyComparator(op comparator, left, right Value) bool {
	switch op {
	case cmpEQ:
		return equalValues(left, right)
	case cmpNE:
		return notEqualValues(left, right)
	case cmpLT:
		result, valid := lessThan(left, right)
		return valid && result
	case cmpLE:
		result, valid := lessOrEqual(left, right)
		return valid && result
	case cmpGT:
		result, valid := greaterThan(left, right)
		return valid && result
	case cmpGE:
		result, valid := greaterOrEqual(left, right)
		return valid && result
	default:
		return false
	}
}

func (n *filterNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	source, _ := n.lhs.evaluate(arena, input)
	if source == nil || !source.IsArray() {
		return Null, nil
	}
	result := arena.NewArray()
	for i := 0; i < source.Size(); i++ {
		elem := source.At(i)
		left, _ := n.cmpLeft.evaluate(arena, elem)
		if n.cmpRight == nil {
			if !IsTruthy(left) {
				continue
			}
		} else {
			right, _ := n.cmpRight.evaluate(arena, elem)
			if !applyComparator(n.operator, left, right) {
				continue
			}
		}
		v, _ := n.chain.evaluate(arena, elem)
		if v == nil || v.IsNull() {
			continue
		}
		result.Append(v)
	}
	return result, nil
}

func (n *multiSelectListNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	if input == nil || !input.IsObject() {
		return Null, nil
	}
	result := arena.NewArray()
	for _, child := range n.children {
		v, _ := child.evaluate(arena, input)
		result.Append(v)
	}
	return result, nil
}

func (n *multiSelectHashNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	if input == nil || !input.IsObject() {
		return Null, nil
	}
	result := arena.NewObject()
	for _, entry := range n.entries {
		pair, _ := entry.evaluate(arena, input)
		v, _ := pair.Get(entry.name)
		result.Set(entry.name, v)
	}
	return result, nil
}

// evaluate returns the singleton object `{name: child(input)}` spec §4.4
// item 13 describes. multiSelectHashNode calls this once per declared key
// and merges the results in declaration order.
func (n *nameExpressionNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	v, _ := n.child.evaluate(arena, input)
	result := arena.NewObject()
	result.Set(n.name, v)
	return result, nil
}

func (n *functionCallNode) evaluate(arena *Arena, input Value) (Value, *EvalError) {
	v, err := n.fn(arena, input, n.args)
	if err != nil {
		arena.recordError(err)
		return Null, err
	}
	return v, nil
}
