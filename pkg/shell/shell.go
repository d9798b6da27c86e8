package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Phate6660/crusty/pkg/prompt"
	"go.uber.org/zap"
)

// type Builtin
type Builtin func(args []string, io IOBindings, s *Shell) error

// type Shell
type Shell struct {
	in       LineReader
	stdin    io.Reader
	Out      io.Writer
	Err      io.Writer
	pathDirs []string
	builtins map[string]Builtin
	executor Executor
	parser   Parser
	opener   FileOpener
	handlers []RedirectionHandler
	prompt   PromptSource
	color    bool
	logger   *zap.Logger
	status   int
}

// func New
func New(reader LineReader, out, errw io.Writer, opts ...Option) *Shell {
	path := os.Getenv("PATH")
	var dirs []string

	if path != "" {
		dirs = strings.Split(path, string(os.PathListSeparator))
	}

	s := &Shell{
		in:       reader,
		Out:      out,
		Err:      errw,
		pathDirs: dirs,
		builtins: make(map[string]Builtin),
		opener:   &DefaultFileOpener{},
		handlers: defaultRedirectionHandlers(),
		prompt:   NewPromptStore(DefaultPrompt),
		color:    true,
		logger:   zap.NewNop(),
	}

	s.executor = &DefaultExecutor{LookupFunc: s.Lookup}
	s.parser = NewDefaultParser()

	for _, opt := range opts {
		opt(s)
	}

	s.registerBuiltins()
	return s
}

// Run reads and executes lines until input ends or exit is called.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.in.Readline(s.RenderPrompt())

		if errors.Is(err, ErrInterrupted) {
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.RunLine(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}

			fmt.Fprintln(s.Err, "crusty:", err)
		}

	}

}

// RunLine parses and executes a single line. It returns an error matching
// ErrExit when the line called exit, and parse errors as they are.
func (s *Shell) RunLine(ctx context.Context, line string) error {
	stages, err := s.parser.Parse(line)

	if err != nil {
		s.status = 2
		s.logger.Debug("parse failed", zap.String("line", line), zap.Error(err))
		return err
	}

	if len(stages) == 0 {
		return nil
	}

	status, err := s.runPipeline(ctx, stages)
	s.status = status
	return err
}

// ExitCode reports the status of the last executed line, or the code
// passed to exit.
func (s *Shell) ExitCode() int {
	return s.status
}

// RenderPrompt compiles the current prompt template.
func (s *Shell) RenderPrompt() string {
	template := s.prompt.Template()

	if !s.color {
		return prompt.Plain(template)
	}

	return prompt.Compile(template)
}

// func Lookup
func (s *Shell) Lookup(name string) (string, bool) {

	if strings.ContainsRune(name, os.PathSeparator) {
		if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0 {
			return name, true
		}
		return "", false
	}

	for _, dir := range s.pathDirs {

		pathToCheck := filepath.Join(dir, name)

		if info, err := os.Stat(pathToCheck); err == nil {
			if info.Mode().IsRegular() && info.Mode()&0111 != 0 {
				return pathToCheck, true
			}
		}
	}

	return "", false

}
