package calc

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

const operators = "+-*/%^"

func lex(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:i]), pos: start})

		case strings.ContainsRune(operators, r):
			tokens = append(tokens, token{kind: tokenOp, text: string(r), pos: i})
			i++

		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++

		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	return append(tokens, token{kind: tokenEOF, pos: len(runes)}), nil
}
