package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistrySealed is returned by Register once dispatch has started.
var ErrRegistrySealed = errors.New("cli: registry is sealed after first dispatch")

// DuplicateNameError reports a name or alias that is already taken.
type DuplicateNameError struct {
	Name  string // the colliding name or alias
	Scope string // where it collided: "root", "alias", or a parent command path
	Owner string // command that already holds the name, if known
}

func (e *DuplicateNameError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("cli: duplicate %s name %q (already used by %q)", e.Scope, e.Name, e.Owner)
	}
	return fmt.Sprintf("cli: duplicate %s name %q", e.Scope, e.Name)
}

// InvalidDefinitionError reports a malformed command or option definition.
type InvalidDefinitionError struct {
	Command string // command path
	Field   string
	Message string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("cli: invalid definition %q: %s: %s", e.Command, e.Field, e.Message)
}

// CommandNotFoundError reports a first token that matched no root command.
// Message is the user-facing text, including any suggestions.
type CommandNotFoundError struct {
	Input       string
	Suggestions []string
	Message     string
}

func (e *CommandNotFoundError) Error() string {
	return e.Message
}

// MissingSubcommandError reports a router command reached without selecting
// one of its children.
type MissingSubcommandError struct {
	Path        []*Command
	Unknown     string // unmatched token, empty when none was given
	Suggestions []string
}

// Command returns the router that required a subcommand.
func (e *MissingSubcommandError) Command() *Command {
	return e.Path[len(e.Path)-1]
}

func (e *MissingSubcommandError) Error() string {
	path := commandPath(e.Path)
	if e.Unknown == "" {
		return fmt.Sprintf("%s: a subcommand is required", path)
	}
	msg := fmt.Sprintf("%s: unknown subcommand %q", path, e.Unknown)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(e.Suggestions), ", "))
	}
	return msg
}

// UnknownOptionError reports a flag with no matching option definition.
type UnknownOptionError struct {
	Command string
	Flag    string // the token as given, e.g. "--colour"
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s: unknown option %s", e.Command, e.Flag)
}

// InvalidOptionValueError reports a flag value that failed coercion.
type InvalidOptionValueError struct {
	Command string
	Flag    string
	Value   string
	Type    OptionType
	Reason  string
}

func (e *InvalidOptionValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: option %s: %s", e.Command, e.Flag, e.Reason)
	}
	return fmt.Sprintf("%s: option %s: invalid %s value %q", e.Command, e.Flag, e.Type, e.Value)
}

// ActionError wraps a failure returned by a command's action.
type ActionError struct {
	Command string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError lets an action choose the front end's exit code.
type ExitError struct {
	Code int
	Err  error
}

// Exit wraps err so that App.Run returns code.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode implements ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// IsUsageError reports whether err is caused by how the user invoked the
// program rather than by an action failing.
func IsUsageError(err error) bool {
	var (
		notFound *CommandNotFoundError
		missing  *MissingSubcommandError
		unknown  *UnknownOptionError
		invalid  *InvalidOptionValueError
	)
	return errors.As(err, &notFound) || errors.As(err, &missing) ||
		errors.As(err, &unknown) || errors.As(err, &invalid)
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
