package condition

import (
	"testing"
)

func TestEval(t *testing.T) {
	vars := map[string]string{
		"age":   "16",
		"plan":  "premium",
		"vip":   "true",
		"name":  "Alice",
		"score": "7.5",
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "numeric gte false", expr: "age >= 18", want: false},
		{name: "numeric gte true", expr: "age >= 16", want: true},
		{name: "numeric lt", expr: "age < 18", want: true},
		{name: "numeric eq", expr: "score == 7.5", want: true},
		{name: "numeric neq", expr: "score != 7", want: true},
		{name: "string eq single quotes", expr: "plan == 'premium'", want: true},
		{name: "string eq double quotes", expr: `name == "Alice"`, want: true},
		{name: "string neq", expr: "plan != 'free'", want: true},
		{name: "boolean variable", expr: "vip == true", want: true},
		{name: "and both true", expr: "age >= 16 && plan == 'premium'", want: true},
		{name: "and one false", expr: "age >= 18 && plan == 'premium'", want: false},
		{name: "or short form", expr: "age >= 18 || vip == true", want: true},
		{name: "keyword operators", expr: "age >= 18 or vip == true and plan == 'premium'", want: true},
		{name: "not", expr: "!(age >= 18)", want: true},
		{name: "not keyword", expr: "not (vip == true)", want: false},
		{name: "arithmetic", expr: "age + 2 >= 18", want: true},
		{name: "multiplication", expr: "age * 2 == 32", want: true},
		{name: "modulo", expr: "age % 5 == 1", want: true},
		{name: "parentheses change grouping", expr: "(age >= 18 || vip == true) && plan == 'premium'", want: true},
		{name: "literal true", expr: "true", want: true},
		{name: "literal false", expr: "false", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.expr, vars)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	vars := map[string]string{"age": "16"}

	tests := []struct {
		name string
		expr string
	}{
		{name: "unknown variable", expr: "height >= 180"},
		{name: "dangling operator", expr: "age >="},
		{name: "non boolean result", expr: "age + 2"},
		{name: "unterminated string", expr: "name == 'Alice"},
		{name: "comparing boolean with number", expr: "true == 5"},
		{name: "logical on non booleans", expr: "age && true"},
		{name: "division by zero", expr: "age / 0 == 1"},
		{name: "trailing garbage", expr: "age >= 10 age"},
		{name: "unexpected character", expr: "age >= 10 @"},
		{name: "missing closing paren", expr: "(age >= 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Eval(tt.expr, vars); err == nil {
				t.Errorf("Eval(%q) expected error, got none", tt.expr)
			}
		})
	}
}

func TestEvalStringOrdering(t *testing.T) {
	got, err := Eval("plan < 'z'", map[string]string{"plan": "premium"})
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if !got {
		t.Error("expected lexicographic comparison to hold")
	}
}
