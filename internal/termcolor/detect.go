package termcolor

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and anything else backed by a descriptor.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether the given file descriptor refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd)) //nolint:gosec // G115: fd comes from os.File.Fd(); safe on all supported platforms
}

// IsTerminalWriter reports whether w is backed by a terminal.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && IsTerminal(f.Fd())
}

// ShouldColorize reports whether color output should be enabled for w: w
// must be backed by a terminal and NO_COLOR must be unset.
func ShouldColorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminalWriter(w)
}
