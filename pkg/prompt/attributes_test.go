package prompt

import "testing"

func TestResolveColors(t *testing.T) {

	tests := []struct {
		name       string
		foreground int
		background int
	}{
		{"BLACK", 30, 40},
		{"RED", 31, 41},
		{"GREEN", 32, 42},
		{"YELLOW", 33, 43},
		{"BLUE", 34, 44},
		{"MAGENTA", 35, 45},
		{"CYAN", 36, 46},
		{"WHITE", 37, 47},
		{"", 37, 47},
		{"PURPLE", 37, 47},
		{"Red", 37, 47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveForeground(tt.name); got != tt.foreground {
				t.Errorf("ResolveForeground(%q) = %d, want %d", tt.name, got, tt.foreground)
			}
			if got := ResolveBackground(tt.name); got != tt.background {
				t.Errorf("ResolveBackground(%q) = %d, want %d", tt.name, got, tt.background)
			}
		})
	}
}

func TestResolveOption(t *testing.T) {
	tests := map[string]int{
		"i":  3,
		"u":  4,
		"":   0,
		"b":  0,
		"iu": 0,
		"I":  0,
	}

	for in, want := range tests {
		if got := ResolveOption(in); got != want {
			t.Errorf("ResolveOption(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("MAGENTA")
	if !ok || c != Magenta {
		t.Fatalf("ParseColor(MAGENTA) = %v, %v", c, ok)
	}
	if c.String() != "MAGENTA" {
		t.Errorf("String() = %q", c.String())
	}

	if _, ok := ParseColor("magenta"); ok {
		t.Error("expected lower case name to be rejected")
	}
	if Color(42).String() != "UNKNOWN" {
		t.Errorf("out of range color: %q", Color(42).String())
	}
}

func TestKindResolve(t *testing.T) {
	if got := KindOption.Resolve("u"); got != 4 {
		t.Errorf("option: got %d", got)
	}
	if got := KindBackground.Resolve("CYAN"); got != 46 {
		t.Errorf("background: got %d", got)
	}
	if got := KindForeground.Resolve("CYAN"); got != 36 {
		t.Errorf("foreground: got %d", got)
	}
}

func TestSequence(t *testing.T) {
	seq := NewSequence(44, 37)
	seq.Append(3)

	if seq.Len() != 3 {
		t.Errorf("Len() = %d", seq.Len())
	}
	if got := seq.String(); got != "\x1b[44;37;3m" {
		t.Errorf("String() = %q", got)
	}
	if got := (&Sequence{}).String(); got != "" {
		t.Errorf("empty sequence rendered %q", got)
	}
}
