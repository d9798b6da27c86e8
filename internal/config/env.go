package config

import (
	"os"
	"strconv"
)

const (
	EnvPrompt   = "CRUSTY_PROMPT"
	EnvHistory  = "CRUSTY_HISTORY"
	EnvLogFile  = "CRUSTY_LOG"
	EnvLogLevel = "CRUSTY_LOG_LEVEL"
	EnvColor    = "CRUSTY_COLOR"
	EnvNoColor  = "NO_COLOR"
)

// FromEnv reads overrides from the environment.
// Note: an empty CRUSTY_PROMPT counts as unset.
func FromEnv() Config {
	var cfg Config

	cfg.Prompt = os.Getenv(EnvPrompt)
	cfg.HistoryFile = os.Getenv(EnvHistory)
	cfg.LogFile = os.Getenv(EnvLogFile)
	cfg.LogLevel = os.Getenv(EnvLogLevel)

	if val, ok := os.LookupEnv(EnvColor); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Color = &b
		}
	}

	// https://no-color.org: any non-empty value disables color
	if val := os.Getenv(EnvNoColor); val != "" {
		off := false
		cfg.Color = &off
	}

	return cfg
}
