package shell

import (
	"errors"
	"strconv"
)

var (
	// exit error
	ErrExit = errors.New("exit")

	ErrNotFound    = errors.New("not found")
	ErrInterrupted = errors.New("interrupted")

	ErrUnclosedQuote      = errors.New("unclosed quote")
	ErrUnescapedCharacter = errors.New("unescaped character")
	ErrEmptyPipelineStage = errors.New("syntax error near unexpected token `|'")

	ErrMissingRedirectDestination = errors.New("missing redirection destination")
	ErrUnsupportedRedirection     = errors.New("unsupported redirection")
	ErrMissingCommand             = errors.New("missing command")
)

// ExitError asks the shell to stop with Code. It matches ErrExit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit " + strconv.Itoa(e.Code)
}

func (e *ExitError) Is(target error) bool {
	return target == ErrExit
}
