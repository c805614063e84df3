package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rybkr/cmdtree/internal/termcolor"
)

func TestFormatAppHelp(t *testing.T) {
	app := NewApp("myapp", "2.0.0")
	var buf bytes.Buffer
	app.Stderr = &buf
	app.GlobalFlags = []Option{
		{Name: "color", Type: String, Default: "auto", Description: "Color output"},
		{Name: "no-color", Type: Boolean, Description: "Disable color output"},
	}

	app.MustRegister(&Command{Name: "test", Description: "Test command", Action: noop})
	app.MustRegister(&Command{Name: "diff", Aliases: []string{"d"}, Description: "Show diff between commits", Action: noop})
	app.MustRegister(&Command{Name: "secret", Description: "Internal", Hidden: true, Action: noop})

	cw := termcolor.NewWriter(os.Stdout, termcolor.ColorNever)
	FormatAppHelp(app, cw)

	out := buf.String()

	checks := []string{
		"myapp version 2.0.0",
		"Usage:",
		"myapp [global flags] <command> [<args>]",
		"Commands:",
		"test",
		"Test command",
		"diff (d)",
		"Show diff between commits",
		"Global flags:",
		"--color=<string>",
		"(default: auto)",
		"--no-color",
		"Run 'myapp help <command>'",
	}
	for _, s := range checks {
		if !strings.Contains(out, s) {
			t.Errorf("FormatAppHelp output missing %q", s)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("FormatAppHelp listed a hidden command")
	}
	if strings.Index(out, "diff") > strings.Index(out, "Test command") {
		t.Error("commands are not listed in sorted order")
	}
}

func TestFormatCommandHelpOptions(t *testing.T) {
	app := NewApp("myapp", "2.0.0")
	var buf bytes.Buffer
	app.Stderr = &buf

	cmd := &Command{
		Name:        "test",
		Description: "Test command",
		Usage:       "<file>...",
		Options: []Option{
			{Name: "flag", Alias: "f", Type: Boolean, Default: false, Description: "Toggle the flag"},
			{Name: "port", Type: Number, Default: 8080, Description: "Port to use"},
			{Name: "label", Type: String, Description: "Optional label"},
		},
		Examples: []string{"myapp test a.txt", "myapp test -f b.txt"},
		Action:   noop,
	}
	app.MustRegister(cmd)

	cw := termcolor.NewWriter(os.Stdout, termcolor.ColorNever)
	FormatCommandHelp(app, []*Command{cmd}, cw)

	out := buf.String()

	checks := []string{
		"test — Test command",
		"Usage:",
		"myapp test [options] <file>...",
		"Options:",
		"--flag, -f",
		"Toggle the flag (default: false)",
		"--port=<number>",
		"Port to use (default: 8080)",
		"--label=<string>",
		"Examples:",
		"myapp test -f b.txt",
	}
	for _, s := range checks {
		if !strings.Contains(out, s) {
			t.Errorf("FormatCommandHelp output missing %q", s)
		}
	}
	if strings.Contains(out, "Optional label (default:") {
		t.Error("empty string default was rendered")
	}
	if strings.Contains(out, "Subcommands:") {
		t.Error("leaf command listed a Subcommands section")
	}
}

func TestFormatCommandHelpSubcommands(t *testing.T) {
	app := NewApp("myapp", "2.0.0")
	var buf bytes.Buffer
	app.Stderr = &buf

	parent := &Command{
		Name:        "parent",
		Description: "Parent command",
		Aliases:     []string{"p"},
		Subcommands: []*Command{
			{Name: "child", Description: "Child command", Action: noop},
			{Name: "ghost", Description: "Hidden child", Hidden: true, Action: noop},
		},
	}
	app.MustRegister(parent)

	cw := termcolor.NewWriter(os.Stdout, termcolor.ColorNever)
	FormatCommandHelp(app, []*Command{parent}, cw)

	out := buf.String()

	checks := []string{
		"Usage:",
		"myapp parent <subcommand>",
		"Aliases:",
		"Subcommands:",
		"child",
		"Child command",
	}
	for _, s := range checks {
		if !strings.Contains(out, s) {
			t.Errorf("FormatCommandHelp output missing %q", s)
		}
	}
	if strings.Contains(out, "ghost") {
		t.Error("hidden subcommand was listed")
	}
	if strings.Contains(out, "[options]") {
		t.Error("router printed a leaf usage line")
	}
}

func TestFormatCommandHelpLong(t *testing.T) {
	app := NewApp("myapp", "2.0.0")
	var buf bytes.Buffer
	app.Stderr = &buf

	cmd := &Command{
		Name:   "greet",
		Long:   "Greets **someone** by name.\n\n- politely\n- loudly",
		Action: noop,
	}

	FormatCommandHelp(app, []*Command{cmd}, termcolor.Plain(&buf))

	out := buf.String()
	if !strings.Contains(out, "  Greets someone by name.\n\n  - politely\n  - loudly\n") {
		t.Errorf("markdown not rendered as plain text:\n%s", out)
	}
	if strings.Contains(out, "**") {
		t.Error("inline markup leaked into help")
	}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		opt  Option
		want string
	}{
		{Option{Name: "flag", Alias: "f"}, "--flag, -f"},
		{Option{Name: "verbose"}, "--verbose"},
		{Option{Name: "port", Type: Number}, "--port=<number>"},
		{Option{Name: "name", Alias: "n", Type: String}, "--name=<string>, -n"},
	}

	for _, tt := range tests {
		if got := OptionLabel(tt.opt); got != tt.want {
			t.Errorf("OptionLabel(%+v) = %q, want %q", tt.opt, got, tt.want)
		}
	}
}

func TestFormatDefault(t *testing.T) {
	tests := []struct {
		opt  Option
		want string
	}{
		{Option{Name: "b", Type: Boolean}, "false"},
		{Option{Name: "b", Type: Boolean, Default: true}, "true"},
		{Option{Name: "n", Type: Number, Default: 8080}, "8080"},
		{Option{Name: "n", Type: Number, Default: 1.5}, "1.5"},
		{Option{Name: "n", Type: Number}, "0"},
		{Option{Name: "s", Type: String}, ""},
		{Option{Name: "s", Type: String, Default: "auto"}, "auto"},
	}

	for _, tt := range tests {
		if got := FormatDefault(tt.opt); got != tt.want {
			t.Errorf("FormatDefault(%+v) = %q, want %q", tt.opt, got, tt.want)
		}
	}
}

func TestWriteRowsAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	writeRows(&buf, [][2]string{{"日本", "wide"}, {"abcd", "narrow"}, {"x", ""}}, func(s string) string { return s })

	want := "  日本  wide\n  abcd  narrow\n  x\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
