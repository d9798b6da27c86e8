package prompt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Strip removes CSI escape sequences from s.
func Strip(s string) string {
	if !strings.Contains(s, csi) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], csi) {
			b.WriteByte(s[i])
			i++
			continue
		}

		j := i + len(csi)
		// parameter and intermediate bytes, then one final byte
		for j < len(s) && s[j] >= 0x20 && s[j] <= 0x3f {
			j++
		}
		if j < len(s) && s[j] >= 0x40 && s[j] <= 0x7e {
			j++
		}
		i = j
	}

	return b.String()
}

// Width reports how many terminal cells compiled output occupies.
func Width(compiled string) int {
	return runewidth.StringWidth(Strip(compiled))
}
