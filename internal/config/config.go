// Package config loads crusty's settings from a TOML or YAML file and the
// environment, and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds shell settings. Zero values mean "not set".
type Config struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	Color       *bool  `toml:"color" yaml:"color"`
}

// ColorEnabled reports the color setting, defaulting to true.
func (c Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Merge returns c with every field set in other overriding it.
func (c Config) Merge(other Config) Config {
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.HistoryFile != "" {
		c.HistoryFile = other.HistoryFile
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Color != nil {
		color := *other.Color
		c.Color = &color
	}
	return c
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var ErrUnknownFormat = errors.New("unknown config format")

// Dir returns the directory crusty reads its config file from.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "crusty")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "crusty")
	}
	return ""
}

// DataDir returns the directory for the history file.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "crusty")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "crusty")
	}
	return ""
}

// DefaultPath returns the first existing config file in Dir, preferring
// TOML, or the TOML path if none exists.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}

	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return filepath.Join(dir, "config.toml")
}

// Load reads the config file at path. A missing file yields an empty
// Config and no error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil // File doesn't exist, not an error
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse decodes data according to the extension of path.
func Parse(path string, data []byte) (Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	if err != nil {
		return Config{}, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	return cfg, nil
}
