package termcolor

import "io"

// Writer wraps an io.Writer and conditionally applies ANSI color codes
// based on whether color output is enabled.
type Writer struct {
	io.Writer
	enabled bool
}

// NewWriter resolves mode against w. In ColorAuto mode color is enabled
// only when ShouldColorize(w) holds.
func NewWriter(w io.Writer, mode ColorMode) *Writer {
	var enabled bool
	switch mode {
	case ColorAlways:
		enabled = true
	case ColorNever:
		enabled = false
	default:
		enabled = ShouldColorize(w)
	}
	return &Writer{Writer: w, enabled: enabled}
}

// Plain returns a Writer that never emits escape codes.
func Plain(w io.Writer) *Writer {
	return &Writer{Writer: w}
}

// Enabled reports whether color output is active.
func (w *Writer) Enabled() bool {
	return w != nil && w.enabled
}

func (w *Writer) paint(code, s string) string {
	if !w.Enabled() || s == "" {
		return s
	}
	return code + s + reset
}

// Red returns s in red, or unchanged if color is disabled.
func (w *Writer) Red(s string) string { return w.paint(red, s) }

// Green returns s in green, or unchanged if color is disabled.
func (w *Writer) Green(s string) string { return w.paint(green, s) }

// Yellow returns s in yellow, or unchanged if color is disabled.
func (w *Writer) Yellow(s string) string { return w.paint(yellow, s) }

// Cyan returns s in cyan, or unchanged if color is disabled.
func (w *Writer) Cyan(s string) string { return w.paint(cyan, s) }

// Bold returns s in bold, or unchanged if color is disabled.
func (w *Writer) Bold(s string) string { return w.paint(bold, s) }

// Dim returns s dimmed, or unchanged if color is disabled.
func (w *Writer) Dim(s string) string { return w.paint(dim, s) }

// BoldCyan returns s in bold cyan, or unchanged if color is disabled.
func (w *Writer) BoldCyan(s string) string { return w.paint(boldCyan, s) }
