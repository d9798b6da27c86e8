package prompt

// Color is one of the eight standard terminal colors.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const (
	foregroundBase = 30
	backgroundBase = 40
)

var colorNames = [...]string{"BLACK", "RED", "GREEN", "YELLOW", "BLUE", "MAGENTA", "CYAN", "WHITE"}

// ParseColor maps an upper case color name to its Color.
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return 0, false
}

func (c Color) Foreground() int {
	return foregroundBase + int(c)
}

func (c Color) Background() int {
	return backgroundBase + int(c)
}

func (c Color) String() string {
	if c < Black || c > White {
		return "UNKNOWN"
	}
	return colorNames[c]
}

// Effect is a font effect selected with %{...}.
type Effect int

const (
	EffectReset     Effect = 0
	EffectItalics   Effect = 3
	EffectUnderline Effect = 4
)

// ResolveOption maps an option payload to its SGR code.
// Anything other than "i" or "u" resets all attributes.
func ResolveOption(text string) int {
	switch text {
	case "i":
		return int(EffectItalics)
	case "u":
		return int(EffectUnderline)
	default:
		return int(EffectReset)
	}
}

// ResolveBackground maps a color name to its background code, falling
// back to white.
func ResolveBackground(text string) int {
	c, ok := ParseColor(text)
	if !ok {
		c = White
	}
	return c.Background()
}

// ResolveForeground maps a color name to its foreground code, falling
// back to white.
func ResolveForeground(text string) int {
	c, ok := ParseColor(text)
	if !ok {
		c = White
	}
	return c.Foreground()
}
