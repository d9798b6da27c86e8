package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/Phate6660/crusty/internal/config"
	"github.com/Phate6660/crusty/internal/lineedit"
	"github.com/Phate6660/crusty/internal/logging"
	"github.com/Phate6660/crusty/pkg/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitStatus carries a non-zero shell status out of cobra.
type exitStatus struct {
	code int
}

func (e exitStatus) Error() string {
	return "exit status " + strconv.Itoa(e.code)
}

func statusError(code int) error {
	if code == 0 {
		return nil
	}
	return exitStatus{code: code}
}

type flags struct {
	command    string
	prompt     string
	configPath string
	history    string
	logFile    string
	logLevel   string
	noColor    bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "crusty [script]",
		Short: "An interactive shell with a colorful prompt",
		Long: `crusty is an interactive shell.

The prompt template may contain directives:
  %{i} %{u}     italics, underline (any other option resets)
  F<COLOR>      foreground color
  B<COLOR>      background color
COLOR is one of BLACK RED GREEN YELLOW BLUE MAGENTA CYAN WHITE.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args, stdin, stdout, stderr)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&f.command, "command", "c", "", "run a single command line and exit")
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "prompt template (overrides "+config.EnvPrompt+")")
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default "+filepath.Join("$XDG_CONFIG_HOME", "crusty", "config.toml")+")")
	cmd.Flags().StringVar(&f.history, "history", "", "history file")
	cmd.Flags().StringVar(&f.logFile, "log", "", "write JSON logs to this file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable escape sequences in the prompt and ls")

	return cmd
}

// overrides collects settings from the environment and flags, which win
// over the config file.
func overrides(cmd *cobra.Command, f *flags) config.Config {
	cfg := config.FromEnv()

	var fromFlags config.Config
	if cmd.Flags().Changed("prompt") {
		fromFlags.Prompt = f.prompt
	}
	fromFlags.HistoryFile = f.history
	fromFlags.LogFile = f.logFile
	fromFlags.LogLevel = f.logLevel
	if f.noColor {
		off := false
		fromFlags.Color = &off
	}

	return cfg.Merge(fromFlags)
}

func withDefaults(cfg config.Config) config.Config {
	if cfg.Prompt == "" {
		cfg.Prompt = shell.DefaultPrompt
	}
	if cfg.HistoryFile == "" {
		if dir := config.DataDir(); dir != "" {
			cfg.HistoryFile = filepath.Join(dir, "crusty.history")
		}
	}
	return cfg
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && lineedit.IsTerminal(f)
}

func run(cmd *cobra.Command, f *flags, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	fileCfg, err := config.Load(path)
	if err != nil {
		return err
	}

	over := overrides(cmd, f)
	cfg := withDefaults(fileCfg.Merge(over))

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting", zap.String("config", path), zap.Bool("color", cfg.ColorEnabled()))

	store := shell.NewPromptStore(cfg.Prompt)
	opts := []shell.Option{
		shell.WithLogger(logger),
		shell.WithPromptSource(store),
		shell.WithColor(cfg.ColorEnabled() && isTerminalWriter(stdout)),
		shell.WithStdin(stdin),
	}

	if cmd.Flags().Changed("command") {
		s := shell.New(lineedit.NewPlain(stdin, io.Discard), stdout, stderr, opts...)
		if err := s.RunLine(ctx, f.command); err != nil && !errors.Is(err, shell.ErrExit) {
			fmt.Fprintln(stderr, "crusty:", err)
		}
		return statusError(s.ExitCode())
	}

	if len(args) == 1 {
		return runScript(ctx, args[0], stdout, stderr, opts)
	}

	reader, err := lineReader(stdin, stdout, cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("opening line editor: %w", err)
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchConfig(ctx, path, over, store, logger)

	// Interrupts belong to the foreground command, not the shell. The
	// channel is never read: registering it only replaces the default
	// handler. signal.Ignore would be inherited by children through exec.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	s := shell.New(reader, stdout, stderr, opts...)
	if err := s.Run(ctx); err != nil {
		return err
	}

	return statusError(s.ExitCode())
}

func runScript(ctx context.Context, path string, stdout, stderr io.Writer, opts []shell.Option) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	s := shell.New(lineedit.NewPlain(file, io.Discard), stdout, stderr, opts...)
	if err := s.Run(ctx); err != nil {
		return err
	}

	return statusError(s.ExitCode())
}

func lineReader(stdin io.Reader, stdout io.Writer, history string) (shell.LineReader, error) {
	if in, ok := stdin.(*os.File); ok && in == os.Stdin {
		return lineedit.New(history)
	}

	return lineedit.NewPlain(stdin, stdout), nil
}

// watchConfig keeps the prompt in sync with the config file. Overrides
// from the environment and flags still win after a reload.
func watchConfig(ctx context.Context, path string, over config.Config, store *shell.PromptStore, logger *zap.Logger) {
	if path == "" {
		return
	}

	w, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Debug("config watch disabled", zap.Error(err))
		return
	}

	go w.Run(ctx, func(cfg config.Config) {
		store.Configure(withDefaults(cfg.Merge(over)).Prompt)
	})
}
