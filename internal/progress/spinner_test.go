package progress

import (
	"bytes"
	"testing"
)

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "working")

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Active() {
		t.Fatal("spinner started on a non-terminal writer")
	}
	s.Stop()
	s.Stop()

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
