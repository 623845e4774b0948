package cli

import (
	"testing"
)

func TestParseTagExpression(t *testing.T) {
	cases := []struct {
		input string
		tags  []string
		want  bool
	}{
		{"documentation", []string{"documentation"}, true},
		{"documentation", []string{"writing"}, false},
		{"a AND b", []string{"a", "b"}, true},
		{"a AND b", []string{"a"}, false},
		{"a OR b", []string{"b"}, true},
		{"a OR b", []string{"c"}, false},
		{"NOT draft", []string{"final"}, true},
		{"NOT draft", []string{"draft"}, false},
		{"a AND (b OR c)", []string{"a", "c"}, true},
		{"a AND (b OR c)", []string{"a"}, false},
		{"a AND NOT b", []string{"a"}, true},
		{"a AND NOT b", []string{"a", "b"}, false},
		{"and or not", nil, false}, // operator keywords are not tags
	}

	for _, c := range cases {
		expr, err := ParseTagExpression(c.input)
		if c.input == "and or not" {
			// "and" in operator position with nothing to join is invalid.
			if err == nil {
				t.Errorf("ParseTagExpression(%q) should fail", c.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTagExpression(%q) failed: %v", c.input, err)
		}
		if got := expr.Evaluate(c.tags); got != c.want {
			t.Errorf("%q on %v = %v, want %v", c.input, c.tags, got, c.want)
		}
	}
}

func TestParseTagExpressionErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"(a OR b",
		"a AND",
		"NOT",
		"a b OR", // trailing operator after implicit junk
	} {
		if _, err := ParseTagExpression(input); err == nil {
			t.Errorf("ParseTagExpression(%q) should fail", input)
		}
	}
}

func TestParseTagExpressionCaseInsensitiveOperators(t *testing.T) {
	expr, err := ParseTagExpression("a and (b or c)")
	if err != nil {
		t.Fatalf("Lowercase operators failed: %v", err)
	}
	if !expr.Evaluate([]string{"a", "b"}) {
		t.Error("Expected lowercase operators to parse as operators")
	}
}
