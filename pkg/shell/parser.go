package shell

import (
	"io"
	"strings"
	"unicode"
)

type DefaultParser struct {
	newReader  func(string) io.RuneReader
	newBuilder func() *strings.Builder
}

func NewDefaultParser() *DefaultParser {
	d := &DefaultParser{
		newReader: func(s string) io.RuneReader {
			return strings.NewReader(s)
		},
		newBuilder: func() *strings.Builder {
			return &strings.Builder{}
		},
	}

	return d
}

type parseState int

const (
	stateOutside parseState = iota
	stateSingleQuote
	stateDoubleQuote
)

const pipeRune = '|'

// Field is one word of a command line. Quoted is set when any part of the
// word came from quotes or a backslash escape; such words are never operators.
type Field struct {
	Value  string
	Quoted bool
}

func fieldValues(fields []Field) []string {
	values := make([]string, len(fields))
	for i, field := range fields {
		values[i] = field.Value
	}
	return values
}

type tokenBuffer struct {
	builder *strings.Builder
	quoted  bool
}

func newTokenBuffer(builder *strings.Builder) *tokenBuffer {
	tokenBuffer := &tokenBuffer{
		builder: builder,
	}

	return tokenBuffer
}

func (tokenBuffer *tokenBuffer) isEmpty() bool {
	return tokenBuffer.builder.Len() == 0
}

func (tokenBuffer *tokenBuffer) appendRune(r rune) {
	tokenBuffer.builder.WriteRune(r)
}

func (tokenBuffer *tokenBuffer) markQuoted() {
	tokenBuffer.quoted = true
}

// flushIfNotEmpty ends the current word. The quoted mark is cleared even for
// an empty word so `"" >` still sees a bare operator.
func (tokenBuffer *tokenBuffer) flushIfNotEmpty(args []Field) []Field {
	if !tokenBuffer.isEmpty() {
		args = append(args, Field{Value: tokenBuffer.builder.String(), Quoted: tokenBuffer.quoted})
		tokenBuffer.builder.Reset()
	}
	tokenBuffer.quoted = false

	return args

}

// pipelineBuffer collects finished stages and the fields of the current one.
type pipelineBuffer struct {
	stages [][]Field
	args   []Field
}

func (pipeline *pipelineBuffer) cut() error {
	if len(pipeline.args) == 0 {
		return ErrEmptyPipelineStage
	}

	pipeline.stages = append(pipeline.stages, pipeline.args)
	pipeline.args = []Field{}
	return nil
}

func (pipeline *pipelineBuffer) finish() ([][]Field, error) {
	if len(pipeline.args) == 0 {
		if len(pipeline.stages) > 0 {
			return nil, ErrEmptyPipelineStage
		}
		return [][]Field{}, nil
	}

	return append(pipeline.stages, pipeline.args), nil
}

func handleStateOutside(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool, pipeline *pipelineBuffer) (parseState, bool, error) {

	if isEscaping {
		tokenBuffer.appendRune(ch)
		isEscaping = false
		return currState, isEscaping, nil
	}

	if unicode.IsSpace(ch) {

		pipeline.args = tokenBuffer.flushIfNotEmpty(pipeline.args)

	} else if ch == pipeRune {
		pipeline.args = tokenBuffer.flushIfNotEmpty(pipeline.args)
		if err := pipeline.cut(); err != nil {
			return currState, isEscaping, err
		}

	} else if ch == '\'' {
		tokenBuffer.markQuoted()
		currState = stateSingleQuote

	} else if ch == '"' {
		tokenBuffer.markQuoted()
		currState = stateDoubleQuote
	} else if ch == '\\' {
		tokenBuffer.markQuoted()
		isEscaping = true
	} else {
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping, nil

}

func handleStateSingleQuote(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool) (parseState, bool) {

	if ch == '\'' {
		currState = stateOutside

	} else {
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping

}

func handleStateDoubleQuote(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool) (parseState, bool) {

	if isEscaping {
		if ch != '\\' && ch != '"' {
			tokenBuffer.appendRune('\\')
		}

		tokenBuffer.appendRune(ch)

		isEscaping = false
		return currState, isEscaping

	}

	if ch == '"' {
		currState = stateOutside

	} else if ch == '\\' {
		isEscaping = true
	} else {
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping

}

func (p *DefaultParser) Parse(line string) ([][]Field, error) {
	runeReader := p.newReader(line)
	tokenBuffer := newTokenBuffer(p.newBuilder())

	pipeline := &pipelineBuffer{args: []Field{}}

	currState := stateOutside
	isEscaping := false

	for {
		ch, _, err := runeReader.ReadRune()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		switch currState {
		case stateOutside:
			currState, isEscaping, err = handleStateOutside(ch, currState, tokenBuffer, isEscaping, pipeline)
			if err != nil {
				return nil, err
			}

		case stateSingleQuote:
			currState, isEscaping = handleStateSingleQuote(ch, currState, tokenBuffer, isEscaping)

		case stateDoubleQuote:
			currState, isEscaping = handleStateDoubleQuote(ch, currState, tokenBuffer, isEscaping)
		}

	}

	if currState == stateSingleQuote || currState == stateDoubleQuote {
		return nil, ErrUnclosedQuote
	}

	if isEscaping {
		return nil, ErrUnescapedCharacter
	}

	pipeline.args = tokenBuffer.flushIfNotEmpty(pipeline.args)

	return pipeline.finish()

}
