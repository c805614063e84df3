package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/pterm/pterm"

	"github.com/rybkr/cmdtree/internal/cli"
	"github.com/rybkr/cmdtree/internal/config"
	"github.com/rybkr/cmdtree/internal/i18n"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

// Build-time variables set via -ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const appName = "cmdtree"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, so tests can drive it.
func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	gf, args, err := parseGlobalFlags(argv)
	if err != nil {
		fatal(stderr, err)
		return 2
	}

	// --version is handled before app.Run because "--" prefixed args
	// would be treated as unknown commands by the dispatcher.
	if gf.version {
		printVersion(stdout)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(stderr, err)
		return 2
	}

	mode := cfg.ColorMode()
	if gf.colorSet {
		mode = gf.colorMode
	}
	cw := termcolor.NewWriter(stdout, mode)
	if cw.Enabled() {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}

	app := newApp(cfg, cli.IO{Stdin: stdin, Stdout: stdout, Stderr: stderr}, cw)
	return app.Run(ctx, args, cw)
}

// newApp builds the application and registers every command.
func newApp(cfg config.Config, streams cli.IO, cw *termcolor.Writer) *cli.App {
	cat := i18n.New(cfg.Locale)

	app := cli.NewApp(appName, version)
	app.Stderr = streams.Stderr
	app.IO = streams
	app.Logger = cfg.Logger(streams.Stderr)
	app.Catalog = cat
	app.Suggest = cfg.SuggestConfig()
	app.GlobalFlags = []cli.Option{
		{Name: "color", Type: cli.String, Default: "auto", Description: cat.Sprintf(i18n.GlobalFlagColor)},
		{Name: "no-color", Type: cli.Boolean, Description: cat.Sprintf(i18n.GlobalFlagNoColor)},
		{Name: "version", Type: cli.Boolean, Description: cat.Sprintf(i18n.GlobalFlagVersion)},
	}

	registerCommands(app, cfg, cw)
	return app
}

func fatal(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cmdtree %s\n", version)
	fmt.Fprintf(w, "  commit:     %s\n", commit)
	fmt.Fprintf(w, "  built:      %s\n", buildDate)
	fmt.Fprintf(w, "  go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
