package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ActionFunc is the handler bound to a leaf command. It runs synchronously;
// handlers that start background work must wait for it before returning.
type ActionFunc func(ctx context.Context, inv *Invocation) error

// Command describes a command or subcommand. A Command with a nil Action is
// a router: it only exists to group its Subcommands.
type Command struct {
	Name        string
	Description string   // one-line description for help listing
	Long        string   // optional markdown shown in per-command help
	Usage       string   // argument synopsis shown after the command path, e.g. "<file>..."
	Aliases     []string // alternate names, unique across the registry
	Options     []Option
	Subcommands []*Command
	Examples    []string
	Hidden      bool // dispatchable, but left out of help and suggestions
	Action      ActionFunc
}

// IsRouter reports whether the command has no action of its own.
func (c *Command) IsRouter() bool {
	return c.Action == nil
}

// HasSubcommands reports whether the command owns any children.
func (c *Command) HasSubcommands() bool {
	return len(c.Subcommands) > 0
}

// Matches reports whether token equals the command name or one of its aliases.
func (c *Command) Matches(token string) bool {
	if c.Name == token {
		return true
	}
	for _, a := range c.Aliases {
		if a == token {
			return true
		}
	}
	return false
}

// Subcommand returns the direct child matching token by name or alias.
func (c *Command) Subcommand(token string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Matches(token) {
			return sub
		}
	}
	return nil
}

// Option returns the option declared with the given name or alias.
func (c *Command) Option(key string) (Option, bool) {
	for _, o := range c.Options {
		if o.Name == key || (o.Alias != "" && o.Alias == key) {
			return o, true
		}
	}
	return Option{}, false
}

// OptionType is the declared value type of an Option.
type OptionType int

const (
	// Boolean options are switches: presence means true.
	Boolean OptionType = iota
	// String options take their value verbatim.
	String
	// Number options are parsed as base-10 floating point numbers.
	Number
)

func (t OptionType) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Number:
		return "number"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Option declares a flag accepted by a command.
type Option struct {
	Name        string // long form, --name
	Alias       string // optional single-letter short form, -a
	Type        OptionType
	Default     any
	Description string
}

// zero returns the value an option takes when neither supplied nor defaulted.
func (o Option) zero() any {
	switch o.Type {
	case Boolean:
		return false
	case Number:
		return float64(0)
	default:
		return ""
	}
}

// defaultValue normalises Default to the option's value type. ok is false
// when Default holds a value of the wrong type.
func (o Option) defaultValue() (v any, ok bool) {
	if o.Default == nil {
		return o.zero(), true
	}
	switch o.Type {
	case Boolean:
		b, ok := o.Default.(bool)
		return b, ok
	case String:
		s, ok := o.Default.(string)
		return s, ok
	case Number:
		switch n := o.Default.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case int32:
			return float64(n), true
		}
	}
	return nil, false
}

// IO bundles the process streams handed to actions. Actions write through
// it rather than to os.Stdout so tests can capture their output.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdIO returns the process's standard streams.
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Invocation is the result of resolving one argument vector: the matched
// command path from root to leaf, the bound option values, and positionals.
type Invocation struct {
	Path    []*Command
	Options Values
	Args    []string
	IO      IO
	Logger  *slog.Logger
}

// Command returns the deepest matched command.
func (inv *Invocation) Command() *Command {
	if len(inv.Path) == 0 {
		return nil
	}
	return inv.Path[len(inv.Path)-1]
}

// PathString returns the space-separated names along the command path.
func (inv *Invocation) PathString() string {
	return commandPath(inv.Path)
}

func commandPath(path []*Command) string {
	names := make([]string, len(path))
	for i, c := range path {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}
