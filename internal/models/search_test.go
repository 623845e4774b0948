package models

import (
	"encoding/json"
	"testing"
)

func TestTagExprJSONRoundTrip(t *testing.T) {
	expr := NewOr(
		NewAnd(NewTag("diagnosis"), NewNot(NewTag("draft"))),
		NewTag("treatment"),
	)

	data, err := json.Marshal(expr)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got TagExpr
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	cases := []struct {
		tags []string
		want bool
	}{
		{[]string{"diagnosis"}, true},
		{[]string{"diagnosis", "draft"}, false},
		{[]string{"treatment", "draft"}, true},
		{[]string{"draft"}, false},
	}
	for _, c := range cases {
		if got.Evaluate(c.tags) != c.want {
			t.Errorf("Evaluate(%v) = %v, want %v", c.tags, !c.want, c.want)
		}
	}
}

func TestTagExprMarshalRejectsMismatchedValue(t *testing.T) {
	// A tag node must hold a string, operator nodes child expressions.
	bad := &TagExpr{Type: TagExprTag, Value: []*TagExpr{NewTag("x")}}
	if _, err := json.Marshal(bad); err == nil {
		t.Error("Expected error marshaling tag node with child expressions")
	}

	bad = &TagExpr{Type: TagExprAnd, Value: "not-children"}
	if _, err := json.Marshal(bad); err == nil {
		t.Error("Expected error marshaling operator node with string value")
	}
}
