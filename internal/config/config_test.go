package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "config.toml")
	writeFile(t, tomlPath, `
prompt = "F<RED>crusty%{} > "
history_file = "/tmp/hist"
color = false
`)

	yamlPath := filepath.Join(dir, "config.yaml")
	writeFile(t, yamlPath, `
prompt: "B<BLUE>y> "
log_level: debug
`)

	badPath := filepath.Join(dir, "bad.toml")
	writeFile(t, badPath, `prompt = `)

	iniPath := filepath.Join(dir, "config.ini")
	writeFile(t, iniPath, `prompt=x`)

	tests := []struct {
		name        string
		path        string
		expected    Config
		color       bool
		expectedErr error
	}{
		{
			name:     "toml",
			path:     tomlPath,
			expected: Config{Prompt: "F<RED>crusty%{} > ", HistoryFile: "/tmp/hist"},
			color:    false,
		},
		{
			name:     "yaml",
			path:     yamlPath,
			expected: Config{Prompt: "B<BLUE>y> ", LogLevel: "debug"},
			color:    true,
		},
		{
			name:     "missing file",
			path:     filepath.Join(dir, "nope.toml"),
			expected: Config{},
			color:    true,
		},
		{
			name:     "empty path",
			path:     "",
			expected: Config{},
			color:    true,
		},
		{
			name:        "parse error",
			path:        badPath,
			expectedErr: &ParseError{},
		},
		{
			name:        "unknown extension",
			path:        iniPath,
			expectedErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)

			if tt.expectedErr != nil {
				var parseErr *ParseError
				if _, ok := tt.expectedErr.(*ParseError); ok {
					if !errors.As(err, &parseErr) {
						t.Errorf("Expected *ParseError got %v", err)
					}
					return
				}
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("Expected error: %v got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error got %v", err)
			}

			if cfg.Prompt != tt.expected.Prompt || cfg.HistoryFile != tt.expected.HistoryFile || cfg.LogLevel != tt.expected.LogLevel {
				t.Errorf("expected %+v got %+v", tt.expected, cfg)
			}
			if cfg.ColorEnabled() != tt.color {
				t.Errorf("expected color %v got %v", tt.color, cfg.ColorEnabled())
			}
		})
	}
}

func TestMerge(t *testing.T) {
	off := false
	base := Config{Prompt: "a", HistoryFile: "h", LogLevel: "info"}
	merged := base.Merge(Config{Prompt: "b", Color: &off})

	if merged.Prompt != "b" || merged.HistoryFile != "h" || merged.LogLevel != "info" {
		t.Errorf("unexpected merge result %+v", merged)
	}
	if merged.ColorEnabled() {
		t.Error("expected color to be disabled")
	}

	off = true
	if merged.ColorEnabled() {
		t.Error("merge must copy the color value")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPrompt, "F<CYAN>env> ")
	t.Setenv(EnvHistory, "/tmp/env-history")
	t.Setenv(EnvColor, "true")
	t.Setenv(EnvNoColor, "1")

	cfg := FromEnv()

	if cfg.Prompt != "F<CYAN>env> " {
		t.Errorf("prompt: %q", cfg.Prompt)
	}
	if cfg.HistoryFile != "/tmp/env-history" {
		t.Errorf("history: %q", cfg.HistoryFile)
	}
	if cfg.ColorEnabled() {
		t.Error("NO_COLOR must disable color")
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := DefaultPath(), filepath.Join(dir, "crusty", "config.toml"); got != want {
		t.Errorf("expected %s got %s", want, got)
	}

	if err := os.MkdirAll(filepath.Join(dir, "crusty"), 0755); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "crusty", "config.yml")
	writeFile(t, yamlPath, "prompt: x\n")

	if got := DefaultPath(); got != yamlPath {
		t.Errorf("expected %s got %s", yamlPath, got)
	}
}
