package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rybkr/cmdtree/internal/cli"
	"github.com/rybkr/cmdtree/internal/console"
	"github.com/rybkr/cmdtree/internal/termcolor"
)

var errNestedShell = errors.New("already in a shell")

// runShell dispatches one command per input line through app. Command
// failures are reported by app.Run and do not end the session.
func runShell(ctx context.Context, app *cli.App, inv *cli.Invocation, cw *termcolor.Writer) error {
	con := &console.Console{In: inv.IO.Stdin, Out: inv.IO.Stdout, Err: inv.IO.Stderr}
	if con.IsInteractive() {
		fmt.Fprintf(con.Out, "%s %s shell. Type 'help' for commands, 'exit' to leave.\n", app.Name, app.Version)
	}

	err := con.REPL(ctx, app.Name+"> ", func(ctx context.Context, argv []string) error {
		if len(argv) == 0 {
			return nil
		}
		if cmd := app.Lookup(argv[0]); cmd != nil && cmd == inv.Command() {
			return errNestedShell
		}
		// The shell action is still running here. Nesting is safe because a
		// Dispatcher keeps no per-call state and the registry is sealed.
		if code := app.Run(ctx, argv, cw); code != 0 {
			inv.Logger.Debug("line failed", "argv", argv, "code", code)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
