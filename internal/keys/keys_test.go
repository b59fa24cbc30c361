package keys

import "testing"

func TestValidate_Accepts(t *testing.T) {
	for _, s := range []string{"a", "orders-2024", "user 42", "ação", "A_b.c|d"} {
		if err := Validate(s); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", s, err)
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	if err := Validate(""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestValidate_DisallowedCharacters(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"backslash", `a\b`},
		{"hash", "a#b"},
		{"percent", "a%b"},
		{"plus", "a+b"},
		{"question", "a?b"},
		{"slash", "a/b"},
		{"tab", "a\tb"},
		{"newline", "a\nb"},
		{"del", "a\x7fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.key); err == nil {
				t.Errorf("Validate(%q) = nil, want error", tt.key)
			}
		})
	}
}
