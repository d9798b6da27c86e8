package prompt

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "ascii", input: "F<a>", expected: []string{"F", "<", "a", ">"}},
		{name: "combining mark stays with its base", input: "e\u0301x", expected: []string{"e\u0301", "x"}},
		{name: "crlf is one token", input: "a\r\n", expected: []string{"a", "\r\n"}},
		{name: "escape byte is its own token", input: "\x1b[0m", expected: []string{"\x1b", "[", "0", "m"}},
		{name: "wide characters", input: "日本", expected: []string{"日", "本"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Tokenize(tt.input)
			if len(res) != len(tt.expected) {
				t.Fatalf("expected %q got %q", tt.expected, res)
			}
			for i := range res {
				if res[i] != tt.expected[i] {
					t.Errorf("token %d: expected %q got %q", i, tt.expected[i], res[i])
				}
			}
			if joined := strings.Join(res, ""); joined != tt.input {
				t.Errorf("tokens do not rebuild input: %q", joined)
			}
		})
	}
}
