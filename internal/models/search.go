package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TagExprType defines the node type of a boolean tag expression.
type TagExprType string

const (
	TagExprTag TagExprType = "tag"
	TagExprAnd TagExprType = "and"
	TagExprOr  TagExprType = "or"
	TagExprNot TagExprType = "not"
)

// TagExpr is a boolean expression over prompt tags. Value holds a string
// for TagExprTag nodes and []*TagExpr for operator nodes.
type TagExpr struct {
	Type  TagExprType `json:"type"`
	Value interface{} `json:"value"`
}

// NewTag creates a tag leaf node.
func NewTag(tag string) *TagExpr {
	return &TagExpr{Type: TagExprTag, Value: tag}
}

// NewAnd creates a conjunction of expressions.
func NewAnd(exprs ...*TagExpr) *TagExpr {
	return &TagExpr{Type: TagExprAnd, Value: exprs}
}

// NewOr creates a disjunction of expressions.
func NewOr(exprs ...*TagExpr) *TagExpr {
	return &TagExpr{Type: TagExprOr, Value: exprs}
}

// NewNot negates an expression.
func NewNot(expr *TagExpr) *TagExpr {
	return &TagExpr{Type: TagExprNot, Value: []*TagExpr{expr}}
}

// Evaluate evaluates the expression against a tag set. A nil expression
// matches everything. Tag comparison is case-insensitive.
func (e *TagExpr) Evaluate(tags []string) bool {
	if e == nil {
		return true
	}

	switch e.Type {
	case TagExprTag:
		name, ok := e.Value.(string)
		if !ok {
			return false
		}
		for _, t := range tags {
			if strings.EqualFold(t, name) {
				return true
			}
		}
		return false

	case TagExprAnd:
		children, ok := e.Value.([]*TagExpr)
		if !ok || len(children) == 0 {
			return true
		}
		for _, c := range children {
			if !c.Evaluate(tags) {
				return false
			}
		}
		return true

	case TagExprOr:
		children, ok := e.Value.([]*TagExpr)
		if !ok {
			return false
		}
		for _, c := range children {
			if c.Evaluate(tags) {
				return true
			}
		}
		return false

	case TagExprNot:
		children, ok := e.Value.([]*TagExpr)
		if !ok || len(children) != 1 {
			return false
		}
		return !children[0].Evaluate(tags)

	default:
		return false
	}
}

// String returns a human-readable form, e.g. ([ai] AND NOT [archive]).
func (e *TagExpr) String() string {
	if e == nil {
		return ""
	}

	switch e.Type {
	case TagExprTag:
		if name, ok := e.Value.(string); ok {
			return fmt.Sprintf("[%s]", name)
		}
		return "[unknown]"
	case TagExprAnd, TagExprOr:
		op := " AND "
		if e.Type == TagExprOr {
			op = " OR "
		}
		children, ok := e.Value.([]*TagExpr)
		if !ok {
			return "(?)"
		}
		parts := make([]string, 0, len(children))
		for _, c := range children {
			parts = append(parts, c.String())
		}
		return "(" + strings.Join(parts, op) + ")"
	case TagExprNot:
		if children, ok := e.Value.([]*TagExpr); ok && len(children) == 1 {
			return "NOT " + children[0].String()
		}
		return "NOT ?"
	default:
		return "(?)"
	}
}

// MarshalJSON encodes the node with its concrete value type.
func (e *TagExpr) MarshalJSON() ([]byte, error) {
	if e.Type == TagExprTag {
		tag, ok := e.Value.(string)
		if !ok {
			return nil, fmt.Errorf("tag expression node holds %T, want string", e.Value)
		}
		return json.Marshal(struct {
			Type  TagExprType `json:"type"`
			Value string      `json:"value"`
		}{e.Type, tag})
	}
	children, ok := e.Value.([]*TagExpr)
	if !ok {
		return nil, fmt.Errorf("%s expression node holds %T, want child expressions", e.Type, e.Value)
	}
	return json.Marshal(struct {
		Type  TagExprType `json:"type"`
		Value []*TagExpr  `json:"value"`
	}{e.Type, children})
}

// UnmarshalJSON decodes the node, dispatching on the type field.
func (e *TagExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  TagExprType     `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Type = raw.Type
	if raw.Type == TagExprTag {
		var tag string
		if err := json.Unmarshal(raw.Value, &tag); err != nil {
			return err
		}
		e.Value = tag
		return nil
	}

	var children []*TagExpr
	if err := json.Unmarshal(raw.Value, &children); err != nil {
		return err
	}
	e.Value = children
	return nil
}

// SavedSearch is a named, reusable search: a boolean tag expression with
// an optional free-text filter applied on top.
type SavedSearch struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Expression  *TagExpr `json:"expression"`
	TextQuery   string   `json:"text_query,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
