package template

import (
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{
			name: "no placeholders",
			text: "Hello there!",
			vars: map[string]string{"name": "Alice"},
			want: "Hello there!",
		},
		{
			name: "single substitution",
			text: "Hi {{name}}!",
			vars: map[string]string{"name": "Alice"},
			want: "Hi Alice!",
		},
		{
			name: "multiple substitutions",
			text: "{{greeting}}, {{name}}. {{greeting}} again.",
			vars: map[string]string{"greeting": "Hello", "name": "Bob"},
			want: "Hello, Bob. Hello again.",
		},
		{
			name: "unresolved placeholder stays verbatim",
			text: "Hi {{name}}!",
			vars: map[string]string{},
			want: "Hi {{name}}!",
		},
		{
			name: "whitespace inside braces",
			text: "Hi {{ name }}!",
			vars: map[string]string{"name": "Alice"},
			want: "Hi Alice!",
		},
		{
			name: "empty value substitutes to nothing",
			text: "Hi {{name}}!",
			vars: map[string]string{"name": ""},
			want: "Hi !",
		},
		{
			name: "nil vars leaves everything",
			text: "order {{id}}",
			vars: nil,
			want: "order {{id}}",
		},
		{
			name: "empty text",
			text: "",
			vars: map[string]string{"name": "Alice"},
			want: "",
		},
		{
			name: "malformed braces untouched",
			text: "Hi {name} and {{na me}}",
			vars: map[string]string{"name": "Alice"},
			want: "Hi {name} and {{na me}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.text, tt.vars); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "none", text: "plain text", want: nil},
		{name: "single", text: "Hi {{name}}", want: []string{"name"}},
		{name: "ordered and deduplicated", text: "{{b}} {{a}} {{b}}", want: []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variables(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Variables(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Variables(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}
