// Package console reads command lines from the user, either through a raw
// mode line editor when stdin is a terminal or line by line from a pipe.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"golang.org/x/term"

	"github.com/rybkr/cmdtree/internal/termcolor"
)

// Console bundles the streams the REPL talks to.
type Console struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// IsInteractive reports whether both In and Out are terminals.
func (c *Console) IsInteractive() bool {
	f, ok := c.In.(*os.File)
	return ok && termcolor.IsTerminal(f.Fd()) && termcolor.IsTerminalWriter(c.Out)
}

// LineReader yields one line per call and io.EOF when input ends.
type LineReader interface {
	ReadLine() (string, error)
}

// Lines returns a reader over c.In. Interactive consoles get a line editor
// showing prompt; piped input is read without a prompt.
func (c *Console) Lines(prompt string) LineReader {
	if c.IsInteractive() {
		f := c.In.(*os.File)
		rw := struct {
			io.Reader
			io.Writer
		}{c.In, c.Out}
		return &termReader{fd: int(f.Fd()), t: term.NewTerminal(rw, prompt)} //nolint:gosec // G115: fd comes from os.File.Fd()
	}
	return &pipeReader{br: bufio.NewReader(c.In)}
}

// termReader holds the terminal in raw mode only while a line is edited, so
// command output in between is written in cooked mode.
type termReader struct {
	fd int
	t  *term.Terminal
}

func (r *termReader) ReadLine() (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(r.fd, state) }()
	return r.t.ReadLine()
}

type pipeReader struct {
	br *bufio.Reader
}

func (r *pipeReader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Split breaks line into arguments using shell quoting rules. Environment
// variables and backticks are left unexpanded.
func Split(line string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false
	args, err := p.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", line, err)
	}
	return args, nil
}

// HandlerFunc runs one parsed command line.
type HandlerFunc func(ctx context.Context, argv []string) error

// REPL reads lines until EOF, "exit" or "quit", or until ctx is done, and
// passes each non-empty line to handle. Lines starting with '#' are
// skipped. Parse and handler errors are written to c.Err and the loop
// continues.
func (c *Console) REPL(ctx context.Context, prompt string, handle HandlerFunc) error {
	lines := c.Lines(prompt)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		argv, err := Split(line)
		if err != nil {
			_, _ = fmt.Fprintf(c.Err, "%v\n", err)
			continue
		}
		if err := handle(ctx, argv); err != nil {
			_, _ = fmt.Fprintf(c.Err, "%v\n", err)
		}
	}
}
