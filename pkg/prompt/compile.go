package prompt

import "strings"

// Kind identifies the directive a payload was captured for.
type Kind int

const (
	KindOption Kind = iota
	KindBackground
	KindForeground
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindBackground:
		return "background"
	case KindForeground:
		return "foreground"
	default:
		return "unknown"
	}
}

// Resolve maps payload text to the SGR code for this kind of directive.
func (k Kind) Resolve(text string) int {
	switch k {
	case KindBackground:
		return ResolveBackground(text)
	case KindForeground:
		return ResolveForeground(text)
	default:
		return ResolveOption(text)
	}
}

type scanState int

const (
	stateIdle scanState = iota
	stateAwaitOption
	stateInOption
	stateAwaitBackground
	stateInBackground
	stateAwaitForeground
	stateInForeground
)

const (
	markerOption     = "%"
	markerBackground = "B"
	markerForeground = "F"

	openOption  = "{"
	closeOption = "}"
	openColor   = "<"
	closeColor  = ">"
)

// payload is a completed directive waiting in the current run.
type payload struct {
	kind Kind
	text string
}

type compiler struct {
	state scanState
	text  strings.Builder
	run   []payload
	out   strings.Builder
	plain bool
}

// Compile turns a prompt template into literal text interleaved with SGR
// escape sequences.
//
// Directives are %{i} / %{u} for italics / underline (any other option
// resets), B<COLOR> for background and F<COLOR> for foreground. Adjacent
// directives are merged into one sequence that is written just before the
// next literal character or at the end of input. Malformed directives never
// fail compilation: unknown names fall back to a default code and an
// unterminated directive is dropped.
func Compile(template string) string {
	return compile(template, false)
}

// Plain scans template like Compile but writes only the literal text.
func Plain(template string) string {
	return compile(template, true)
}

func compile(template string, plain bool) string {
	c := &compiler{plain: plain}
	c.out.Grow(len(template))

	for _, tok := range Tokenize(template) {
		c.step(tok)
	}
	c.finish()

	return c.out.String()
}

func (c *compiler) step(tok string) {
	switch c.state {
	case stateIdle:
		c.handleIdle(tok)
	case stateAwaitOption:
		c.handleAwait(tok, openOption, stateInOption)
	case stateAwaitBackground:
		c.handleAwait(tok, openColor, stateInBackground)
	case stateAwaitForeground:
		c.handleAwait(tok, openColor, stateInForeground)
	case stateInOption:
		c.handlePayload(tok, closeOption, KindOption)
	case stateInBackground:
		c.handlePayload(tok, closeColor, KindBackground)
	case stateInForeground:
		c.handlePayload(tok, closeColor, KindForeground)
	}
}

func (c *compiler) handleIdle(tok string) {
	switch tok {
	case markerOption:
		c.state = stateAwaitOption
	case markerBackground:
		c.state = stateAwaitBackground
	case markerForeground:
		c.state = stateAwaitForeground
	default:
		c.flush()
		c.out.WriteString(tok)
	}
}

// handleAwait runs right after a marker. Anything but the opening
// delimiter drops the marker and the token is dispatched again from idle.
func (c *compiler) handleAwait(tok, open string, next scanState) {
	if tok == open {
		c.state = next
		return
	}

	c.state = stateIdle
	c.handleIdle(tok)
}

func (c *compiler) handlePayload(tok, closing string, kind Kind) {
	if tok != closing {
		c.text.WriteString(tok)
		return
	}

	c.run = append(c.run, payload{kind: kind, text: c.text.String()})
	c.text.Reset()
	c.state = stateIdle
}

// flush writes the pending run as one escape sequence.
func (c *compiler) flush() {
	if len(c.run) == 0 {
		return
	}

	seq := &Sequence{}
	for _, p := range c.run {
		seq.Append(p.kind.Resolve(p.text))
	}
	c.run = c.run[:0]

	if !c.plain {
		c.out.WriteString(seq.String())
	}
}

// finish flushes the pending run. An open directive is discarded.
func (c *compiler) finish() {
	c.flush()
	c.text.Reset()
	c.state = stateIdle
}
