package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rybkr/cmdtree/internal/i18n"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

// App is the thin front end over a Registry and Dispatcher: it intercepts
// help requests, reports errors, and maps them to exit codes.
type App struct {
	Name        string
	Version     string
	Stderr      io.Writer // help and error output
	IO          IO        // streams handed to actions
	Logger      *slog.Logger
	Catalog     *i18n.Catalog
	Suggest     SuggestConfig
	GlobalFlags []Option // shown in app help; parsed by the caller before Run

	registry   *Registry
	once       sync.Once
	dispatcher *Dispatcher
}

// NewApp creates a new App with the given name and version.
func NewApp(name, version string) *App {
	return &App{
		Name:     name,
		Version:  version,
		Stderr:   os.Stderr,
		IO:       StdIO(),
		Logger:   slog.Default(),
		Suggest:  DefaultSuggestConfig(),
		registry: NewRegistry(),
	}
}

// Register adds a root command. See Registry.Register.
func (a *App) Register(cmd *Command) error {
	return a.registry.Register(cmd)
}

// MustRegister adds a root command and panics if it is rejected.
func (a *App) MustRegister(cmd *Command) {
	a.registry.MustRegister(cmd)
}

// Lookup returns the root command with the given name or alias, or nil.
func (a *App) Lookup(name string) *Command {
	cmd, _ := a.registry.FindCommand(name)
	return cmd
}

// CommandNames returns all registered root command names in sorted order.
func (a *App) CommandNames() []string {
	return a.registry.CommandNames()
}

// Registry returns the app's command registry.
func (a *App) Registry() *Registry {
	return a.registry
}

// Dispatcher returns the app's dispatcher, building it from the app's
// fields on first use.
func (a *App) Dispatcher() *Dispatcher {
	a.once.Do(func() {
		a.dispatcher = NewDispatcher(a.registry,
			WithSuggester(NewSuggester(a.Suggest, a.catalog())),
			WithLogger(a.logger()),
			WithIO(a.IO),
		)
	})
	return a.dispatcher
}

func (a *App) catalog() *i18n.Catalog {
	if a.Catalog == nil {
		return i18n.Default()
	}
	return a.Catalog
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Run dispatches args to the appropriate command. It returns an exit code.
//
// Dispatch rules:
//  1. Empty args → print app help to stderr, return 1
//  2. "help [command...]" / "-h" / "--help" → print app or per-command help, return 0
//  3. Known command with -h/--help among its flags → per-command help, return 0
//  4. Otherwise RunCommand; errors are reported on stderr and return 1, or
//     the code carried by an ExitCoder returned from the action
func (a *App) Run(ctx context.Context, args []string, cw *termcolor.Writer) int {
	if len(args) == 0 {
		FormatAppHelp(a, cw)
		return 1
	}

	switch args[0] {
	case "-h", "--help":
		FormatAppHelp(a, cw)
		return 0
	case "help":
		if a.Lookup("help") == nil {
			return a.showHelp(args[1:], cw)
		}
	}

	names, flags := splitCommandTokens(args)
	if res, ok := a.registry.ResolvePath(names); ok {
		if cmd := res.Command(); wantsHelp(cmd, append(res.Rest, flags...)) {
			FormatCommandHelp(a, res.Path, cw)
			return 0
		}
	}

	return a.report(a.Dispatcher().RunCommand(ctx, args), cw)
}

func (a *App) showHelp(path []string, cw *termcolor.Writer) int {
	if len(path) == 0 {
		FormatAppHelp(a, cw)
		return 0
	}
	res, ok := a.registry.ResolvePath(path)
	if !ok {
		s := a.Dispatcher().Suggester()
		fpf(a.Stderr, "%s help: %s\n", a.Name, s.GenerateSuggestionMessage(path[0], a.registry.Candidates(s.Config().IncludeAliases)))
		return 1
	}
	FormatCommandHelp(a, res.Path, cw)
	return 0
}

// wantsHelp reports whether tokens ask for help on cmd. Commands that
// declare their own help or h option keep those flags, and a token taken as
// the value of a string or number option is not a help request.
func wantsHelp(cmd *Command, tokens []string) bool {
	if _, ok := cmd.Option("help"); ok {
		return false
	}
	_, ownsH := cmd.Option("h")
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "--":
			return false
		case tok == "--help":
			return true
		case tok == "-h" && !ownsH:
			return true
		case isFlag(tok) && !strings.Contains(tok, "="):
			if opt, ok := findFlag(cmd.Options, tok); ok && opt.Type != Boolean {
				i++
			}
		}
	}
	return false
}

// report writes err for the user and returns the matching exit code.
func (a *App) report(err error, cw *termcolor.Writer) int {
	if err == nil {
		return 0
	}
	cat := a.catalog()

	var (
		notFound *CommandNotFoundError
		missing  *MissingSubcommandError
		action   *ActionError
	)
	switch {
	case errors.As(err, &notFound):
		fpf(a.Stderr, "%s: %s\n", a.Name, notFound.Message)
		fpf(a.Stderr, "\n%s\n", cat.Sprintf(i18n.HintHelp, a.Name))
		return 1

	case errors.As(err, &missing):
		path := commandPath(missing.Path)
		if missing.Unknown == "" {
			fpf(a.Stderr, "%s: %s\n", a.Name, cw.Red(cat.Sprintf(i18n.ErrRequired, path)))
		} else {
			fpf(a.Stderr, "%s: %s\n", a.Name, cw.Red(cat.Sprintf(i18n.ErrUnknownSub, path, missing.Unknown)))
			if len(missing.Suggestions) > 0 {
				fpf(a.Stderr, "\n\t%s\n", cat.Sprintf(i18n.HintDidYouMean, strings.Join(quoteAll(missing.Suggestions), ", ")))
			}
		}
		fpf(a.Stderr, "\n")
		FormatCommandHelp(a, missing.Path, cw)
		return 1

	case errors.As(err, &action):
		a.logger().Error("command failed", "command", action.Command, "err", action.Err)
		fpf(a.Stderr, "%s: %s\n", a.Name, cw.Red(err.Error()))
		var coder ExitCoder
		if errors.As(action.Err, &coder) {
			return coder.ExitCode()
		}
		return 1

	default:
		fpf(a.Stderr, "%s: %s\n", a.Name, cw.Red(err.Error()))
		if IsUsageError(err) {
			if path := usagePath(err); path != "" {
				fpf(a.Stderr, "\n%s\n", cat.Sprintf(i18n.HintCommandHelp, a.Name, path))
			}
		}
		return 1
	}
}

func usagePath(err error) string {
	var (
		unknown *UnknownOptionError
		invalid *InvalidOptionValueError
	)
	switch {
	case errors.As(err, &unknown):
		return unknown.Command
	case errors.As(err, &invalid):
		return invalid.Command
	}
	return ""
}
