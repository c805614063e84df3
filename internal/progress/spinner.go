// Package progress provides terminal progress indicators.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"

	"github.com/rybkr/cmdtree/internal/termcolor"
)

// Spinner displays an animated spinner on w while a long-running action is
// in progress. It is only displayed when w is a terminal; in
// non-interactive environments (piped output, CI, E2E tests) it is silent.
type Spinner struct {
	w   io.Writer
	msg string

	mu      sync.Mutex
	printer *pterm.SpinnerPrinter
}

// New creates a Spinner that will display msg alongside the animation.
func New(w io.Writer, msg string) *Spinner {
	return &Spinner{w: w, msg: msg}
}

// Start begins the spinner animation. Calling Start on a running spinner
// does nothing.
func (s *Spinner) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printer != nil || !termcolor.IsTerminalWriter(s.w) {
		return nil
	}
	p, err := pterm.DefaultSpinner.
		WithWriter(s.w).
		WithRemoveWhenDone(true).
		Start(s.msg)
	if err != nil {
		return fmt.Errorf("start spinner: %w", err)
	}
	s.printer = p
	return nil
}

// Active reports whether the animation is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.printer != nil
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printer == nil {
		return
	}
	_ = s.printer.Stop()
	s.printer = nil
}
