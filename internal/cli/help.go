package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rybkr/cmdtree/internal/i18n"
	"github.com/rybkr/cmdtree/internal/mdtext"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

// fpf is a shorthand for fmt.Fprintf that discards the error, used for
// writing help text to stderr where write failures are non-actionable.
func fpf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...) //nolint:gosec // CLI stderr, not web output
}

// FormatAppHelp writes the top-level help text to app.Stderr.
func FormatAppHelp(app *App, cw *termcolor.Writer) {
	w := app.Stderr
	cat := app.catalog()

	fpf(w, "%s\n\n", cat.Sprintf(i18n.HelpVersion, app.Name, app.Version))
	fpf(w, "%s\n", cw.Bold(cat.Sprintf(i18n.HelpUsage)))
	if len(app.GlobalFlags) > 0 {
		fpf(w, "  %s [global flags] <command> [<args>]\n\n", app.Name)
		fpf(w, "%s\n", cw.Bold(cat.Sprintf(i18n.HelpGlobalFlags)))
		writeOptions(w, app.GlobalFlags, cw, cat)
		fpf(w, "\n")
	} else {
		fpf(w, "  %s <command> [<args>]\n\n", app.Name)
	}

	fpf(w, "%s\n", cw.Bold(cat.Sprintf(i18n.HelpCommands)))
	var rows [][2]string
	for _, name := range app.registry.CommandNames() {
		cmd, _ := app.registry.FindCommand(name)
		if cmd.Hidden {
			continue
		}
		rows = append(rows, [2]string{commandLabel(cmd), cmd.Description})
	}
	writeRows(w, rows, cw.BoldCyan)

	fpf(w, "\n%s\n", cat.Sprintf(i18n.HelpMoreInfo, app.Name))
}

// FormatCommandHelp writes help for the command at the end of path to
// app.Stderr. Routers list their subcommands; leaves list their options.
func FormatCommandHelp(app *App, path []*Command, cw *termcolor.Writer) {
	w := app.Stderr
	cat := app.catalog()
	cmd := path[len(path)-1]
	full := app.Name + " " + commandPath(path)

	if cmd.Description != "" {
		fpf(w, "%s — %s\n\n", cw.BoldCyan(commandPath(path)), cmd.Description)
	} else {
		fpf(w, "%s\n\n", cw.BoldCyan(commandPath(path)))
	}

	if cmd.Long != "" {
		fpf(w, "%s\n", mdtext.Plain(cmd.Long, "  "))
	}

	fpf(w, "%s\n", cw.Bold(cat.Sprintf(i18n.HelpUsage)))
	if cmd.HasSubcommands() {
		fpf(w, "  %s <subcommand>\n", full)
	}
	if !cmd.IsRouter() {
		line := full
		if len(cmd.Options) > 0 {
			line += " [options]"
		}
		if cmd.Usage != "" {
			line += " " + cmd.Usage
		}
		fpf(w, "  %s\n", line)
	}

	if len(cmd.Aliases) > 0 {
		fpf(w, "\n%s\n", cw.Bold(cat.Sprintf(i18n.HelpAliases)))
		fpf(w, "  %s\n", strings.Join(cmd.Aliases, ", "))
	}

	if cmd.HasSubcommands() {
		fpf(w, "\n%s\n", cw.Bold(cat.Sprintf(i18n.HelpSubcommands)))
		var rows [][2]string
		for _, sub := range cmd.Subcommands {
			if sub.Hidden {
				continue
			}
			rows = append(rows, [2]string{commandLabel(sub), sub.Description})
		}
		writeRows(w, rows, cw.BoldCyan)
	}

	if len(cmd.Options) > 0 {
		fpf(w, "\n%s\n", cw.Bold(cat.Sprintf(i18n.HelpOptions)))
		writeOptions(w, cmd.Options, cw, cat)
	}

	if len(cmd.Examples) > 0 {
		fpf(w, "\n%s\n", cw.Bold(cat.Sprintf(i18n.HelpExamples)))
		for _, ex := range cmd.Examples {
			fpf(w, "  %s\n", ex)
		}
	}
}

func commandLabel(cmd *Command) string {
	if len(cmd.Aliases) == 0 {
		return cmd.Name
	}
	return cmd.Name + " (" + strings.Join(cmd.Aliases, ", ") + ")"
}

// OptionLabel returns the flag column for o, e.g. "--name, -n".
func OptionLabel(o Option) string {
	label := "--" + o.Name
	if o.Type != Boolean {
		label += "=<" + o.Type.String() + ">"
	}
	if o.Alias != "" {
		label += ", -" + o.Alias
	}
	return label
}

// FormatDefault renders an option's default for help output. It returns ""
// for an empty string default.
func FormatDefault(o Option) string {
	v, ok := o.defaultValue()
	if !ok {
		return fmt.Sprint(o.Default)
	}
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return ""
}

func writeOptions(w io.Writer, opts []Option, cw *termcolor.Writer, cat *i18n.Catalog) {
	rows := make([][2]string, len(opts))
	for i, o := range opts {
		desc := o.Description
		if def := FormatDefault(o); def != "" {
			desc = strings.TrimSpace(desc + " " + cat.Sprintf(i18n.HelpDefault, def))
		}
		rows[i] = [2]string{OptionLabel(o), desc}
	}
	writeRows(w, rows, cw.Yellow)
}

// writeRows prints two aligned columns. Width is measured in terminal
// cells so wide runes do not break alignment.
func writeRows(w io.Writer, rows [][2]string, style func(string) string) {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		if r[1] == "" {
			fpf(w, "  %s\n", style(r[0]))
			continue
		}
		fpf(w, "  %s  %s\n", style(runewidth.FillRight(r[0], width)), r[1])
	}
}
