package prompt

import "github.com/rivo/uniseg"

// Tokenize splits a template into user-perceived characters (extended
// grapheme clusters). Joining the result gives back the input.
func Tokenize(template string) []string {
	tokens := make([]string, 0, len(template))

	gr := uniseg.NewGraphemes(template)
	for gr.Next() {
		tokens = append(tokens, gr.Str())
	}

	return tokens
}
