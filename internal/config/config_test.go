package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rybkr/cmdtree/internal/cli"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{
		Color:          "auto",
		LogLevel:       "warn",
		LogFormat:      "text",
		Locale:         "en",
		MaxSuggestions: 3,
		MinSimilarity:  0.4,
	}
	if cfg != want {
		t.Fatalf("Load() = %+v, want %+v", cfg, want)
	}
	if got := cfg.SuggestConfig(); got != cli.DefaultSuggestConfig() {
		t.Errorf("SuggestConfig() = %+v, want defaults", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CMDTREE_COLOR", "never")
	t.Setenv("CMDTREE_LOG_LEVEL", "debug")
	t.Setenv("CMDTREE_LOG_FORMAT", "json")
	t.Setenv("CMDTREE_LOCALE", "es")
	t.Setenv("CMDTREE_MAX_SUGGESTIONS", "5")
	t.Setenv("CMDTREE_MIN_SIMILARITY", "0.6")
	t.Setenv("CMDTREE_SUGGEST_ALIASES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ColorMode() != termcolor.ColorNever {
		t.Errorf("ColorMode() = %v", cfg.ColorMode())
	}
	if cfg.Locale != "es" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	want := cli.SuggestConfig{MaxSuggestions: 5, MinSimilarity: 0.6, IncludeAliases: true}
	if got := cfg.SuggestConfig(); got != want {
		t.Errorf("SuggestConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		msg        string
	}{
		{"CMDTREE_COLOR", "sometimes", "CMDTREE_COLOR"},
		{"CMDTREE_LOG_LEVEL", "loud", "CMDTREE_LOG_LEVEL"},
		{"CMDTREE_LOG_FORMAT", "xml", "CMDTREE_LOG_FORMAT"},
		{"CMDTREE_MAX_SUGGESTIONS", "0", "must be positive"},
		{"CMDTREE_MIN_SIMILARITY", "1.5", "outside [0,1]"},
		{"CMDTREE_MIN_SIMILARITY", "-0.1", "outside [0,1]"},
		{"CMDTREE_MAX_SUGGESTIONS", "three", "parse env:"},
		{"CMDTREE_SUGGEST_ALIASES", "maybe", "parse env:"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "text")

	logger.Info("hello", "key", "val")
	line := buf.String()
	if strings.HasPrefix(line, "{") {
		t.Errorf("text handler produced JSON output: %q", line)
	}
	if !strings.Contains(line, "hello") || !strings.Contains(line, "key=val") {
		t.Errorf("text handler output missing fields: %q", line)
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "JSON")

	logger.Info("hello", "key", "val")
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") {
		t.Errorf("JSON handler output does not start with '{': %q", line)
	}
	if !strings.Contains(line, `"msg":"hello"`) {
		t.Errorf("JSON handler output missing message field: %q", line)
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn", LogFormat: "text"}.Logger(&buf)

	logger.Info("should-be-suppressed")
	logger.Warn("should-appear")

	out := buf.String()
	if strings.Contains(out, "should-be-suppressed") {
		t.Error("info message appeared despite warn level filter")
	}
	if !strings.Contains(out, "should-appear") {
		t.Error("warn message was filtered")
	}
}
