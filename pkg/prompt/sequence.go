package prompt

import (
	"strconv"
	"strings"
)

const (
	csi       = "\x1b["
	sgrEnd    = "m"
	separator = ";"
)

// Sequence collects the SGR codes of one run and renders them as a
// single escape sequence.
type Sequence struct {
	codes []int
}

// NewSequence returns a sequence holding codes in the given order.
func NewSequence(codes ...int) *Sequence {
	s := &Sequence{}
	for _, code := range codes {
		s.Append(code)
	}
	return s
}

func (s *Sequence) Append(code int) {
	s.codes = append(s.codes, code)
}

func (s *Sequence) Len() int {
	return len(s.codes)
}

// String renders ESC [ code;code... m. An empty sequence renders as "".
func (s *Sequence) String() string {
	if len(s.codes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(csi)
	for i, code := range s.codes {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(strconv.Itoa(code))
	}
	b.WriteString(sgrEnd)
	return b.String()
}
