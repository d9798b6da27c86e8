// Package lineedit provides the line readers used by the shell loop.
package lineedit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Phate6660/crusty/pkg/shell"
	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Readline is an interactive line editor with persistent history.
type Readline struct {
	rl *readline.Instance
}

// NewReadline opens a line editor on the process terminal. historyFile may
// be empty to keep history in memory only.
func NewReadline(historyFile string) (*Readline, error) {
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	return &Readline{rl: rl}, nil
}

func (r *Readline) Readline(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", shell.ErrInterrupted
	}

	return line, err
}

func (r *Readline) Close() error {
	return r.rl.Close()
}

// Plain reads newline-terminated lines from any reader and writes the
// prompt to w.
type Plain struct {
	w io.Writer
	r *bufio.Reader
}

func NewPlain(r io.Reader, w io.Writer) *Plain {
	return &Plain{w: w, r: bufio.NewReader(r)}
}

// Readline returns the next line without its terminator. A final line with
// no newline is returned before io.EOF.
func (p *Plain) Readline(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)

	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Plain) Close() error {
	return nil
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// New picks the line editor when stdin and stdout are terminals and falls
// back to Plain otherwise.
func New(historyFile string) (shell.LineReader, error) {
	if IsTerminal(os.Stdin) && IsTerminal(os.Stdout) {
		return NewReadline(historyFile)
	}

	return NewPlain(os.Stdin, os.Stdout), nil
}
