package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Phate6660/crusty/internal/calc"
	"github.com/Phate6660/crusty/pkg/prompt"
	shexpand "mvdan.cc/sh/v3/shell"
)

type builtinHelp struct {
	Name  string
	Usage string
	Desc  string
}

var builtinHelps = []builtinHelp{
	{Name: "calc", Usage: "calc EXPR", Desc: "Evaluate an arithmetic expression."},
	{Name: "cd", Usage: "cd [DIR]", Desc: "Change the current directory."},
	{Name: "echo", Usage: "echo [ARG...]", Desc: "Print arguments."},
	{Name: "exit", Usage: "exit [CODE]", Desc: "Exit the shell."},
	{Name: "help", Usage: "help", Desc: "Show this help."},
	{Name: "ls", Usage: "ls [DIR...]", Desc: "List directory entries."},
	{Name: "prompt", Usage: "prompt [set TEMPLATE | reset]", Desc: "Show or change the prompt template."},
	{Name: "pwd", Usage: "pwd", Desc: "Print the current directory."},
	{Name: "type", Usage: "type NAME", Desc: "Describe how NAME would be run."},
}

// promptSetter is implemented by prompt sources that can change at runtime.
type promptSetter interface {
	Set(template string)
	Reset()
}

func (s *Shell) registerBuiltins() {

	s.builtins["echo"] = func(args []string, io IOBindings, s *Shell) error {
		fmt.Fprintln(io.Stdout, strings.Join(args, " "))
		return nil
	}

	s.builtins["exit"] = func(args []string, io IOBindings, s *Shell) error {
		if len(args) == 0 {
			return &ExitError{Code: 0}
		}

		code, err := strconv.Atoi(args[0])
		if err != nil {
			code = 0
		}
		return &ExitError{Code: code}
	}

	s.builtins["type"] = func(args []string, io IOBindings, s *Shell) error {

		if len(args) == 0 {
			fmt.Fprintln(io.Stdout, "type: usage: type NAME")
			return nil
		}

		name := args[0]

		// check builts in
		if _, ok := s.builtins[name]; ok {
			fmt.Fprintln(io.Stdout, name, "is a shell builtin")
			return nil
		}

		if path, ok := s.Lookup(name); ok {
			fmt.Fprintln(io.Stdout, name, "is", path)
			return nil
		}

		fmt.Fprintln(io.Stdout, name+": not found")
		return nil
	}

	s.builtins["pwd"] = func(args []string, io IOBindings, s *Shell) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("error finding directory: %w", err)
		}

		fmt.Fprintln(io.Stdout, dir)
		return nil
	}

	s.builtins["cd"] = builtinCd
	s.builtins["ls"] = builtinLs
	s.builtins["calc"] = builtinCalc
	s.builtins["prompt"] = builtinPrompt

	s.builtins["help"] = func(args []string, io IOBindings, s *Shell) error {
		fmt.Fprintln(io.Stdout, "crusty builtins:")
		for _, h := range builtinHelps {
			fmt.Fprintf(io.Stdout, "  %-30s %s\n", h.Usage, h.Desc)
		}
		return nil
	}
}

func builtinCd(args []string, io IOBindings, s *Shell) error {

	var target string

	if len(args) == 0 {
		target = os.Getenv("HOME")
		if target == "" {
			return nil //no home variable set
		}

	} else {
		target = args[0]
	}

	if strings.ContainsRune(target, '$') {
		expanded, err := shexpand.Expand(target, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		target = expanded
	}

	if strings.HasPrefix(target, "~") {
		home := os.Getenv("HOME")
		if home == "" {
			return errors.New("HOME not set")
		}

		if target == "~" {
			target = home
		} else if strings.HasPrefix(target, "~/") {
			target = filepath.Join(home, target[2:])
		} else {
			return fmt.Errorf("unsupported user expansion: %s", target)
		}
	}

	if err := os.Chdir(target); err != nil {

		if os.IsNotExist(err) {
			return fmt.Errorf("%s: No such file or directory", target)
		} else if os.IsPermission(err) {
			return fmt.Errorf("%s: Permission denied", target)
		}

		return fmt.Errorf("%s: %w", target, err)
	}

	return nil

}

func builtinLs(args []string, io IOBindings, s *Shell) error {
	var dirs []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			dirs = append(dirs, arg)
		}
	}

	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid file or directory", dir)
		}

		for _, entry := range entries {
			fmt.Fprintln(io.Stdout, s.colorizePath(filepath.Join(dir, entry.Name())))
		}
	}

	return nil
}

// colorizePath paints directory components green and the final component,
// or any dot component, white.
func (s *Shell) colorizePath(path string) string {
	if !s.color {
		return path
	}

	reset := prompt.NewSequence(int(prompt.EffectReset)).String()
	green := prompt.NewSequence(prompt.Green.Foreground()).String()
	white := prompt.NewSequence(prompt.White.Foreground()).String()

	parts := strings.Split(path, string(filepath.Separator))

	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteString(string(filepath.Separator))
		}
		if part == "" {
			continue
		}

		if strings.HasPrefix(part, ".") || i == len(parts)-1 {
			b.WriteString(white + part + reset)
		} else {
			b.WriteString(green + part + reset)
		}
	}

	return b.String()
}

func builtinCalc(args []string, io IOBindings, s *Shell) error {
	if len(args) == 0 {
		return errors.New("usage: calc EXPR")
	}

	result, err := calc.Eval(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(io.Stdout, strconv.FormatFloat(result, 'f', -1, 64))
	return nil
}

func builtinPrompt(args []string, io IOBindings, s *Shell) error {
	if len(args) == 0 {
		template := s.prompt.Template()
		compiled := s.RenderPrompt()
		reset := prompt.NewSequence(int(prompt.EffectReset)).String()
		if !s.color {
			reset = ""
		}

		fmt.Fprintf(io.Stdout, "template: %s\n", template)
		fmt.Fprintf(io.Stdout, "preview:  %s%s\n", compiled, reset)
		fmt.Fprintf(io.Stdout, "width:    %d\n", prompt.Width(compiled))
		return nil
	}

	setter, ok := s.prompt.(promptSetter)
	if !ok {
		return errors.New("prompt is read-only")
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return errors.New("usage: prompt set TEMPLATE")
		}
		setter.Set(strings.Join(args[1:], " "))
	case "reset":
		setter.Reset()
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}

	return nil
}
