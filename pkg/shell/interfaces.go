package shell

import (
	"context"
)

type Executor interface {
	Execute(ctx context.Context, name string, args []string, io IOBindings) (int, error)
}

// Parser splits a command line into pipeline stages, one field list per stage.
type Parser interface {
	Parse(line string) ([][]Field, error)
}

// LineReader reads one line of input after showing prompt.
// It returns io.EOF when input ends and ErrInterrupted when the user
// cancels the current line.
type LineReader interface {
	Readline(prompt string) (string, error)
	Close() error
}

// PromptSource supplies the prompt template shown before each line.
type PromptSource interface {
	Template() string
}
