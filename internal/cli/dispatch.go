package cli

import (
	"context"
	"log/slog"

	"github.com/rybkr/cmdtree/internal/i18n"
)

// Dispatcher maps argument vectors to command actions. It holds no
// per-invocation state, so one Dispatcher may serve any number of
// sequential or concurrent RunCommand calls, including calls made from
// inside a running action.
type Dispatcher struct {
	registry  *Registry
	suggester *Suggester
	logger    *slog.Logger
	io        IO
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSuggester sets the engine used when a command name is not found.
func WithSuggester(s *Suggester) DispatcherOption {
	return func(d *Dispatcher) { d.suggester = s }
}

// WithLogger sets the logger used for dispatch diagnostics and handed to
// actions.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithIO sets the streams handed to actions.
func WithIO(streams IO) DispatcherOption {
	return func(d *Dispatcher) { d.io = streams }
}

// NewDispatcher returns a Dispatcher over reg. Without options it suggests
// with DefaultSuggestConfig in English, logs to slog.Default(), and gives
// actions the process's standard streams.
func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   slog.Default(),
		io:       StdIO(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.suggester == nil {
		d.suggester = NewSuggester(DefaultSuggestConfig(), i18n.Default())
	}
	return d
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Suggester returns the dispatcher's suggestion engine.
func (d *Dispatcher) Suggester() *Suggester {
	return d.suggester
}

// RunCommand resolves argv (without the program name) and runs the matched
// command's action. Resolution failures are returned as
// *CommandNotFoundError, *MissingSubcommandError, *UnknownOptionError or
// *InvalidOptionValueError before any action runs. A failing action is
// returned as *ActionError.
func (d *Dispatcher) RunCommand(ctx context.Context, argv []string) error {
	inv, err := d.Resolve(argv)
	if err != nil {
		return err
	}

	path := inv.PathString()
	d.logger.Debug("executing", "command", path, "args", inv.Args)
	if err := inv.Command().Action(ctx, inv); err != nil {
		d.logger.Debug("action failed", "command", path, "err", err)
		return &ActionError{Command: path, Err: err}
	}
	d.logger.Debug("done", "command", path)
	return nil
}

// Resolve performs every step of RunCommand except running the action.
// The first call seals the registry.
func (d *Dispatcher) Resolve(argv []string) (*Invocation, error) {
	d.registry.seal()
	d.logger.Debug("resolving", "argv", argv)

	names, flags := splitCommandTokens(argv)
	res, ok := d.registry.ResolvePath(names)
	if !ok {
		input := ""
		if len(argv) > 0 {
			input = argv[0]
		}
		return nil, d.notFound(input)
	}

	rest := append(res.Rest, flags...)
	cmd := res.Command()
	path := commandPath(res.Path)
	d.logger.Debug("resolved", "command", path, "rest", rest)

	if cmd.IsRouter() {
		return nil, d.missingSubcommand(res.Path, rest)
	}

	vals, args, err := ResolveOptions(path, cmd.Options, rest)
	if err != nil {
		d.logger.Debug("option binding failed", "command", path, "err", err)
		return nil, err
	}
	return &Invocation{
		Path:    res.Path,
		Options: vals,
		Args:    args,
		IO:      d.io,
		Logger:  d.logger.With("command", path),
	}, nil
}

func (d *Dispatcher) notFound(input string) error {
	cfg := d.suggester.Config()
	candidates := d.registry.Candidates(cfg.IncludeAliases)
	suggestions := d.suggester.FindSimilarCommands(input, candidates)
	d.logger.Debug("command not found", "input", input, "suggestions", suggestions)
	return &CommandNotFoundError{
		Input:       input,
		Suggestions: suggestions,
		Message:     d.suggester.message(input, suggestions),
	}
}

func (d *Dispatcher) missingSubcommand(path []*Command, rest []string) error {
	err := &MissingSubcommandError{Path: path}
	if len(rest) > 0 && !isFlag(rest[0]) {
		err.Unknown = rest[0]
		router := path[len(path)-1]
		candidates := candidateNames(router.Subcommands, d.suggester.Config().IncludeAliases)
		err.Suggestions = d.suggester.FindSimilarCommands(rest[0], candidates)
	}
	d.logger.Debug("subcommand required", "command", commandPath(path), "unknown", err.Unknown)
	return err
}

// splitCommandTokens splits argv at the first flag: the leading tokens are
// command path candidates, the rest are left for option binding.
func splitCommandTokens(argv []string) (names, rest []string) {
	n := 0
	for n < len(argv) && !isFlag(argv[n]) {
		n++
	}
	return argv[:n], argv[n:]
}
