package shell

import (
	"io"

	"go.uber.org/zap"
)

type Option func(*Shell)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPromptSource(source PromptSource) Option {
	return func(s *Shell) {
		if source != nil {
			s.prompt = source
		}
	}
}

// WithColor controls whether prompt directives and ls output emit escape
// sequences.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		s.color = enabled
	}
}

func WithExecutor(executor Executor) Option {
	return func(s *Shell) {
		s.executor = executor
	}
}

func WithParser(parser Parser) Option {
	return func(s *Shell) {
		s.parser = parser
	}
}

// WithStdin sets the input handed to the first stage of every pipeline.
func WithStdin(r io.Reader) Option {
	return func(s *Shell) {
		s.stdin = r
	}
}

func WithFileOpener(opener FileOpener) Option {
	return func(s *Shell) {
		s.opener = opener
	}
}
