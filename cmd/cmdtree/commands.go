package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rybkr/cmdtree/internal/cli"
	"github.com/rybkr/cmdtree/internal/config"
	"github.com/rybkr/cmdtree/internal/progress"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

func registerCommands(app *cli.App, cfg config.Config, cw *termcolor.Writer) {
	app.MustRegister(&cli.Command{
		Name:        "greet",
		Aliases:     []string{"hello"},
		Description: "Print a greeting",
		Long:        "Greets **name**, or the first argument when `--name` is not given.",
		Usage:       "[<name>]",
		Options: []cli.Option{
			{Name: "name", Alias: "n", Type: cli.String, Default: "world", Description: "Who to greet"},
			{Name: "shout", Alias: "s", Type: cli.Boolean, Description: "Print in upper case"},
			{Name: "times", Alias: "t", Type: cli.Number, Default: 1, Description: "Repeat the greeting"},
		},
		Examples: []string{"cmdtree greet", "cmdtree greet --name Ada -s", "cmdtree hello Grace -t 2"},
		Action:   runGreet,
	})

	app.MustRegister(&cli.Command{
		Name:        "math",
		Aliases:     []string{"m"},
		Description: "Arithmetic on numbers",
		Subcommands: []*cli.Command{
			{
				Name:        "add",
				Aliases:     []string{"sum"},
				Description: "Add numbers",
				Usage:       "<number>...",
				Options:     []cli.Option{precisionOption},
				Examples:    []string{"cmdtree math add 1 2 3"},
				Action:      arith(func(a, b float64) float64 { return a + b }, 0),
			},
			{
				Name:        "mul",
				Aliases:     []string{"times"},
				Description: "Multiply numbers",
				Usage:       "<number>...",
				Options:     []cli.Option{precisionOption},
				Examples:    []string{"cmdtree math mul 2 3.5"},
				Action:      arith(func(a, b float64) float64 { return a * b }, 1),
			},
		},
	})

	app.MustRegister(&cli.Command{
		Name:        "wait",
		Description: "Sleep while showing a spinner",
		Options: []cli.Option{
			{Name: "seconds", Alias: "d", Type: cli.Number, Default: 1, Description: "How long to wait"},
		},
		Action: runWait,
	})

	app.MustRegister(&cli.Command{
		Name:        "tree",
		Description: "Show the command tree",
		Options: []cli.Option{
			{Name: "filter", Alias: "f", Type: cli.String, Description: "Only show commands fuzzy-matching this text"},
			{Name: "aliases", Alias: "a", Type: cli.Boolean, Description: "Show aliases"},
		},
		Examples: []string{"cmdtree tree", "cmdtree tree --filter ad -a"},
		Action: func(_ context.Context, inv *cli.Invocation) error {
			out, err := renderTree(app.Registry(), inv.Options.String("filter"), inv.Options.Bool("aliases"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(inv.IO.Stdout, out)
			return err
		},
	})

	app.MustRegister(&cli.Command{
		Name:        "shell",
		Description: "Run commands interactively",
		Long:        "Reads one command per line and dispatches it. Type `exit` or press Ctrl-D to leave.",
		Action: func(ctx context.Context, inv *cli.Invocation) error {
			return runShell(ctx, app, inv, cw)
		},
	})

	app.MustRegister(&cli.Command{
		Name:        "env",
		Description: "Print the resolved configuration",
		Hidden:      true,
		Action: func(_ context.Context, inv *cli.Invocation) error {
			printConfig(inv, cfg)
			return nil
		},
	})

	app.MustRegister(&cli.Command{
		Name:        "version",
		Description: "Show version information",
		Action: func(_ context.Context, inv *cli.Invocation) error {
			printVersion(inv.IO.Stdout)
			return nil
		},
	})
}

func runGreet(_ context.Context, inv *cli.Invocation) error {
	name := inv.Options.String("name")
	if len(inv.Args) > 0 && !inv.Options.Has("name") {
		name = inv.Args[0]
	}
	msg := fmt.Sprintf("Hello, %s!", name)
	if inv.Options.Bool("shout") {
		msg = strings.ToUpper(msg)
	}

	times := inv.Options.Number("times")
	if times < 1 || times != float64(int(times)) {
		return cli.Exit(2, fmt.Errorf("--times must be a positive whole number, got %v", times))
	}
	for i := 0; i < int(times); i++ {
		if _, err := fmt.Fprintln(inv.IO.Stdout, msg); err != nil {
			return err
		}
	}
	return nil
}

var precisionOption = cli.Option{
	Name: "precision", Alias: "p", Type: cli.Number, Default: -1,
	Description: "Digits after the decimal point, -1 for the shortest form",
}

// arith folds the positional numbers with op starting from identity.
func arith(op func(a, b float64) float64, identity float64) cli.ActionFunc {
	return func(_ context.Context, inv *cli.Invocation) error {
		if len(inv.Args) == 0 {
			return cli.Exit(2, errors.New("at least one number is required"))
		}
		acc := identity
		for _, arg := range inv.Args {
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return cli.Exit(2, fmt.Errorf("not a number: %q", arg))
			}
			acc = op(acc, n)
		}
		inv.Logger.Debug("computed", "args", inv.Args, "result", acc)
		_, err := fmt.Fprintln(inv.IO.Stdout, strconv.FormatFloat(acc, 'f', int(inv.Options.Number("precision")), 64))
		return err
	}
}

func runWait(ctx context.Context, inv *cli.Invocation) error {
	d := time.Duration(inv.Options.Number("seconds") * float64(time.Second))
	if d < 0 {
		return cli.Exit(2, errors.New("--seconds must not be negative"))
	}

	sp := progress.New(inv.IO.Stderr, fmt.Sprintf("waiting %s", d))
	if err := sp.Start(); err != nil {
		inv.Logger.Warn("spinner unavailable", "err", err)
	}
	defer sp.Stop()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func printConfig(inv *cli.Invocation, cfg config.Config) {
	w := inv.IO.Stdout
	fmt.Fprintf(w, "CMDTREE_COLOR=%s\n", cfg.Color)
	fmt.Fprintf(w, "CMDTREE_LOG_LEVEL=%s\n", cfg.LogLevel)
	fmt.Fprintf(w, "CMDTREE_LOG_FORMAT=%s\n", cfg.LogFormat)
	fmt.Fprintf(w, "CMDTREE_LOCALE=%s\n", cfg.Locale)
	fmt.Fprintf(w, "CMDTREE_MAX_SUGGESTIONS=%d\n", cfg.MaxSuggestions)
	fmt.Fprintf(w, "CMDTREE_MIN_SIMILARITY=%s\n", strconv.FormatFloat(cfg.MinSimilarity, 'f', -1, 64))
	fmt.Fprintf(w, "CMDTREE_SUGGEST_ALIASES=%t\n", cfg.SuggestAliases)
}
