// Package config loads cmdtree settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/rybkr/cmdtree/internal/cli"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

// Config holds the settings read from CMDTREE_* environment variables.
type Config struct {
	Color          string  `env:"CMDTREE_COLOR" envDefault:"auto"`
	LogLevel       string  `env:"CMDTREE_LOG_LEVEL" envDefault:"warn"`
	LogFormat      string  `env:"CMDTREE_LOG_FORMAT" envDefault:"text"`
	Locale         string  `env:"CMDTREE_LOCALE" envDefault:"en"`
	MaxSuggestions int     `env:"CMDTREE_MAX_SUGGESTIONS" envDefault:"3"`
	MinSimilarity  float64 `env:"CMDTREE_MIN_SIMILARITY" envDefault:"0.4"`
	SuggestAliases bool    `env:"CMDTREE_SUGGEST_ALIASES" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if _, err := termcolor.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("CMDTREE_COLOR: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("CMDTREE_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("CMDTREE_LOG_FORMAT: unknown format %q (want text or json)", c.LogFormat)
	}
	if c.MaxSuggestions <= 0 {
		return errors.New("CMDTREE_MAX_SUGGESTIONS: must be positive")
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("CMDTREE_MIN_SIMILARITY: %v is outside [0,1]", c.MinSimilarity)
	}
	return nil
}

// ColorMode returns the parsed CMDTREE_COLOR value. Invalid values yield
// termcolor.ColorAuto; Validate reports them.
func (c Config) ColorMode() termcolor.ColorMode {
	mode, err := termcolor.ParseColorMode(c.Color)
	if err != nil {
		return termcolor.ColorAuto
	}
	return mode
}

// SuggestConfig returns the suggestion settings for the dispatcher.
func (c Config) SuggestConfig() cli.SuggestConfig {
	return cli.SuggestConfig{
		MaxSuggestions: c.MaxSuggestions,
		MinSimilarity:  c.MinSimilarity,
		IncludeAliases: c.SuggestAliases,
	}
}
