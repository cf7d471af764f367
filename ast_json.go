package jmespath

import "encoding/json"

// ast_json.go gives every selector kind a debug MarshalJSON, mirroring
// the teacher's ast_json.go `{"node": "...", ...fields}` shape — useful
// for the same reason the teacher has it: json.MarshalIndent on a
// compiled Expression shows the parse tree in tests.

func (e *Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.root)
}

func (n *subExpressionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node     string     `json:"node"`
		Children []Selector `json:"children"`
	}{"subExpression", n.children})
}

func (n *identifierNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node string `json:"node"`
		Name string `json:"name"`
	}{"identifier", n.name})
}

func (n *literalNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string          `json:"node"`
		Value json.RawMessage `json:"value"`
	}{"literal", json.RawMessage(encodeJSON(n.value))})
}

func (n *indexNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string `json:"node"`
		Index int    `json:"index"`
	}{"index", n.index})
}

func (n *sliceNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string `json:"node"`
		Start *int   `json:"start"`
		End   *int   `json:"end"`
		Step  int    `json:"step"`
	}{"slice", n.slice.Start, n.slice.End, n.slice.Step})
}

func (n *listProjectionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string              `json:"node"`
		LHS   Selector            `json:"lhs"`
		Chain *subExpressionNode  `json:"chain"`
	}{"listProjection", n.lhs, n.chain})
}

func (n *objectProjectionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string             `json:"node"`
		LHS   Selector           `json:"lhs"`
		Chain *subExpressionNode `json:"chain"`
	}{"objectProjection", n.lhs, n.chain})
}

func (n *flattenProjectionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string             `json:"node"`
		LHS   Selector           `json:"lhs"`
		Chain *subExpressionNode `json:"chain"`
	}{"flattenProjection", n.lhs, n.chain})
}

func (n *pipeNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string             `json:"node"`
		LHS   Selector           `json:"lhs"`
		Chain *subExpressionNode `json:"chain"`
	}{"pipe", n.lhs, n.chain})
}

func (n *filterNode) MarshalJSON() ([]byte, error) {
	op := ""
	if n.cmpRight != nil {
		op = n.operator.String()
	}
	return json.Marshal(struct {
		Node     string             `json:"node"`
		LHS      Selector           `json:"lhs"`
		CmpLeft  Selector           `json:"cmpLeft"`
		Operator string             `json:"operator,omitempty"`
		CmpRight Selector           `json:"cmpRight,omitempty"`
		Chain    *subExpressionNode `json:"chain"`
	}{"filter", n.lhs, n.cmpLeft, op, n.cmpRight, n.chain})
}

func (n *multiSelectListNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node     string     `json:"node"`
		Children []Selector `json:"children"`
	}{"multiSelectList", n.children})
}

func (n *multiSelectHashNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node    string               `json:"node"`
		Entries []*nameExpressionNode `json:"entries"`
	}{"multiSelectHash", n.entries})
}

func (n *nameExpressionNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node  string   `json:"node"`
		Name  string   `json:"name"`
		Child Selector `json:"child"`
	}{"nameExpression", n.name, n.child})
}

func (n *functionCallNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node string     `json:"node"`
		Name string     `json:"name"`
		Args []Selector `json:"args"`
	}{"functionCall", n.name, n.args})
}

func (n *exprRefNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node string   `json:"node"`
		Expr Selector `json:"expr"`
	}{"exprRef", n.expr})
}

func (n *currentNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node string `json:"node"`
	}{"current"})
}
