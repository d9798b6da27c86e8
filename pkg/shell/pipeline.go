package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const (
	statusFailure  = 1
	statusNotFound = 127
)

// runPipeline connects stages with pipes and runs them concurrently.
// The status of the last stage is returned.
func (s *Shell) runPipeline(ctx context.Context, stages [][]Field) (int, error) {
	s.logger.Debug("running pipeline", zap.Int("stages", len(stages)), zap.Strings("command", fieldValues(stages[0])))

	if len(stages) == 1 {
		return s.runStage(ctx, stages[0], IOBindings{Stdin: s.stdin, Stdout: s.Out, Stderr: s.Err})
	}

	bindings := make([]IOBindings, len(stages))
	readers := make([]*io.PipeReader, len(stages)-1)
	writers := make([]*io.PipeWriter, len(stages)-1)

	for i := range stages {
		bindings[i] = IOBindings{Stdin: s.stdin, Stdout: s.Out, Stderr: s.Err}
	}

	for i := 0; i < len(stages)-1; i++ {
		readers[i], writers[i] = io.Pipe()
		bindings[i].Stdout = writers[i]
		bindings[i+1].Stdin = readers[i]
	}

	statuses := make([]int, len(stages))
	var wg sync.WaitGroup

	for i := range stages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			status, err := s.runStage(ctx, stages[i], bindings[i])
			if err != nil && !errors.Is(err, ErrExit) {
				s.logger.Debug("pipeline stage failed", zap.Int("stage", i), zap.Error(err))
			}
			statuses[i] = status

			if i < len(writers) {
				writers[i].Close()
			}
			if i > 0 {
				readers[i-1].Close()
			}
		}(i)
	}

	wg.Wait()

	return statuses[len(statuses)-1], nil
}

// runStage applies redirections and runs one builtin or external command.
func (s *Shell) runStage(ctx context.Context, fields []Field, bindings IOBindings) (int, error) {
	parsed, err := ParseRedirections(fields)
	if err != nil {
		fmt.Fprintln(bindings.Stderr, "crusty:", err)
		return statusFailure, nil
	}

	if len(parsed.Args) == 0 {
		fmt.Fprintln(bindings.Stderr, "crusty:", ErrMissingCommand)
		return statusFailure, nil
	}

	cleanup, err := applyRedirections(parsed.Redirections, &bindings, s.opener, s.handlers)
	if err != nil {
		fmt.Fprintln(bindings.Stderr, "crusty:", err)
		return statusFailure, nil
	}
	defer cleanup()

	cmd := parsed.Args[0]
	args := parsed.Args[1:]

	// check built ins
	if fn, ok := s.builtins[cmd]; ok {
		if err := fn(args, bindings, s); err != nil {
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return exitErr.Code, err
			}

			fmt.Fprintf(bindings.Stderr, "%s: %v\n", cmd, err)
			return statusFailure, nil
		}
		return 0, nil
	}

	exitCode, err := s.executor.Execute(ctx, cmd, args, bindings)

	if errors.Is(err, ErrNotFound) {
		fmt.Fprintln(bindings.Stderr, cmd+": command not found")
		return statusNotFound, nil
	}

	if err != nil {
		s.logger.Warn("external command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintln(bindings.Stderr, "error running command:", err)
		return statusFailure, nil
	}

	s.logger.Debug("external command finished", zap.String("command", cmd), zap.Int("status", exitCode))
	return exitCode, nil
}
