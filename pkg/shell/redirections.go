package shell

import (
	"fmt"
	"io"
	"os"
)

type FileOpener interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

// Default file opener uses real file system in device
type DefaultFileOpener struct{}

func (fp *DefaultFileOpener) OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (fp *DefaultFileOpener) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}

type RedirectionSpec struct {
	Operator string // operators such as (>, 1>, >>, 1>>, 2>, 2>>, <)
	Target   string // target path
}

// cleaned up arguments after parsed through for redirection
type ParsedCommand struct {
	Args         []string
	Redirections []RedirectionSpec
}

var redirectOperators = map[string]bool{
	">":   true,
	"1>":  true,
	">>":  true,
	"1>>": true,
	"2>":  true,
	"2>>": true,
	"<":   true,
}

// ParseRedirections separates redirection operators and their targets from
// the command arguments. Only unquoted fields count as operators, so
// `echo '>' x` prints its arguments.
func ParseRedirections(fields []Field) (ParsedCommand, error) {
	parsed := ParsedCommand{Args: []string{}}

	for i := 0; i < len(fields); i++ {
		field := fields[i]

		if field.Quoted || !redirectOperators[field.Value] {
			parsed.Args = append(parsed.Args, field.Value)
			continue
		}

		if i+1 >= len(fields) {
			return ParsedCommand{}, fmt.Errorf("%s: %w", field.Value, ErrMissingRedirectDestination)
		}

		parsed.Redirections = append(parsed.Redirections, RedirectionSpec{
			Operator: field.Value,
			Target:   fields[i+1].Value,
		})
		i++
	}

	return parsed, nil
}

// handles each type of redirection
type RedirectionHandler interface {
	CanHandle(operator string) bool                                                                           // check for operator
	Validate(redirection RedirectionSpec) error                                                               // check if this redirection is possible
	Apply(redirection RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (cleanup func(), err error) // apply redirection to bindings

}

func defaultRedirectionHandlers() []RedirectionHandler {
	return []RedirectionHandler{
		&StdoutRedirectionHandler{Overwrite: true},
		&StdoutRedirectionHandler{Overwrite: false},
		&StderrRedirectionHandler{Overwrite: true},
		&StderrRedirectionHandler{Overwrite: false},
		&StdinRedirectionHandler{},
	}
}

func validateTarget(redirection RedirectionSpec) error {
	if redirection.Target == "" {
		return ErrMissingRedirectDestination
	}

	return nil
}

func openForWrite(redirection RedirectionSpec, overwrite bool, opener FileOpener) (io.WriteCloser, error) {
	flag := os.O_CREATE | os.O_WRONLY

	if overwrite {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}

	file, err := opener.OpenWrite(redirection.Target, flag, 0644)

	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", redirection.Target, err)
	}

	return file, nil
}

// handle stdout redirections
type StdoutRedirectionHandler struct {
	Overwrite bool
}

func (handler *StdoutRedirectionHandler) CanHandle(operator string) bool {
	if handler.Overwrite {
		return operator == ">" || operator == "1>"
	}

	return operator == ">>" || operator == "1>>"
}

func (handler *StdoutRedirectionHandler) Validate(redirection RedirectionSpec) error {
	return validateTarget(redirection)
}

func (handler *StdoutRedirectionHandler) Apply(redirection RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (cleanup func(), err error) {

	file, err := openForWrite(redirection, handler.Overwrite, opener)
	if err != nil {
		return nil, err
	}

	ioBindings.Stdout = file
	return func() { file.Close() }, nil

}

// handle stderr redirections
type StderrRedirectionHandler struct {
	Overwrite bool
}

func (handler *StderrRedirectionHandler) CanHandle(operator string) bool {
	if handler.Overwrite {
		return operator == "2>"
	}

	return operator == "2>>"
}

func (handler *StderrRedirectionHandler) Validate(redirection RedirectionSpec) error {
	return validateTarget(redirection)
}

func (handler *StderrRedirectionHandler) Apply(redirection RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (cleanup func(), err error) {

	file, err := openForWrite(redirection, handler.Overwrite, opener)
	if err != nil {
		return nil, err
	}

	ioBindings.Stderr = file
	return func() { file.Close() }, nil

}

// handle stdin redirections
type StdinRedirectionHandler struct{}

func (handler *StdinRedirectionHandler) CanHandle(operator string) bool {
	return operator == "<"
}

func (handler *StdinRedirectionHandler) Validate(redirection RedirectionSpec) error {
	return validateTarget(redirection)
}

func (handler *StdinRedirectionHandler) Apply(redirection RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (cleanup func(), err error) {

	file, err := opener.OpenRead(redirection.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", redirection.Target, err)
	}

	ioBindings.Stdin = file
	return func() { file.Close() }, nil

}

// applyRedirections applies every redirection in order. Later redirections
// of the same stream win. The returned cleanup closes every opened file.
func applyRedirections(redirections []RedirectionSpec, ioBindings *IOBindings, opener FileOpener, handlers []RedirectionHandler) (func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	for _, redirection := range redirections {
		handler := findHandler(redirection.Operator, handlers)
		if handler == nil {
			cleanup()
			return nil, fmt.Errorf("%s: %w", redirection.Operator, ErrUnsupportedRedirection)
		}

		if err := handler.Validate(redirection); err != nil {
			cleanup()
			return nil, err
		}

		done, err := handler.Apply(redirection, ioBindings, opener)
		if err != nil {
			cleanup()
			return nil, err
		}
		cleanups = append(cleanups, done)
	}

	return cleanup, nil
}

func findHandler(operator string, handlers []RedirectionHandler) RedirectionHandler {
	for _, handler := range handlers {
		if handler.CanHandle(operator) {
			return handler
		}
	}

	return nil
}
