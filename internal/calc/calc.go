// Package calc evaluates the arithmetic expressions accepted by the calc
// builtin.
//
// Grammar, lowest precedence first:
//
//	expr   := term   { ("+" | "-") term }
//	term   := unary  { ("*" | "/" | "%") unary }
//	unary  := "-" unary | "+" unary | power
//	power  := atom [ "^" unary ]
//	atom   := number | "(" expr ")"
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrSyntax       = errors.New("syntax error")
	ErrDivideByZero = errors.New("division by zero")
)

// SyntaxError reports where an expression stopped making sense.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Eval evaluates expr.
func Eval(expr string) (float64, error) {
	tokens, err := lex(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}

	return v, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()

		right, err := p.term()
		if err != nil {
			return 0, err
		}

		if tok.text == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/" && tok.text != "%") {
			return left, nil
		}
		p.next()

		right, err := p.unary()
		if err != nil {
			return 0, err
		}

		switch tok.text {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, ErrDivideByZero
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, ErrDivideByZero
			}
			left = math.Mod(left, right)
		}
	}
}

func (p *parser) unary() (float64, error) {
	tok := p.peek()
	if tok.kind == tokenOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if tok.text == "-" {
			return -v, nil
		}
		return v, nil
	}

	return p.power()
}

func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}

	tok := p.peek()
	if tok.kind != tokenOp || tok.text != "^" {
		return base, nil
	}
	p.next()

	// right associative: 2^3^2 == 2^(3^2)
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}

	return math.Pow(base, exp), nil
}

func (p *parser) atom() (float64, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("bad number %q", tok.text)}
		}
		return v, nil

	case tokenLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, &SyntaxError{Pos: closing.pos, Msg: "missing )"}
		}
		return v, nil

	case tokenEOF:
		return 0, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of expression"}

	default:
		return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}
}
