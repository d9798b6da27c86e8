package lineedit

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlainReadline(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("echo hi\r\npwd\nlast"), &out)

	expected := []string{"echo hi", "pwd", "last"}
	for _, want := range expected {
		line, err := p.Readline("$ ")
		if err != nil {
			t.Fatalf("Expected no error got %v", err)
		}
		if line != want {
			t.Errorf("expected %q got %q", want, line)
		}
	}

	if _, err := p.Readline("$ "); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF got %v", err)
	}

	if got := out.String(); got != "$ $ $ $ " {
		t.Errorf("unexpected prompt output %q", got)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
