package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"greet bob", []string{"greet", "bob"}},
		{`say "hello world"`, []string{"say", "hello world"}},
		{`say 'single quoted'`, []string{"say", "single quoted"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Split(tt.line)
			if err != nil {
				t.Fatalf("Split(%q): %v", tt.line, err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}

	if _, err := Split(`say "unterminated`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}

func TestPipeReader(t *testing.T) {
	c := &Console{In: strings.NewReader("one\r\ntwo\nthree"), Out: &bytes.Buffer{}}
	if c.IsInteractive() {
		t.Fatal("string reader reported as interactive")
	}

	lines := c.Lines("> ")
	var got []string
	for {
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, line)
	}
	if want := []string{"one", "two", "three"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestREPL(t *testing.T) {
	input := strings.Join([]string{
		"greet bob",
		"",
		"# a comment",
		`say "hello world"`,
		`say "broken`,
		"fail",
		"exit",
		"never reached",
	}, "\n")
	var out, errOut bytes.Buffer
	c := &Console{In: strings.NewReader(input), Out: &out, Err: &errOut}

	var calls [][]string
	err := c.REPL(context.Background(), "> ", func(_ context.Context, argv []string) error {
		calls = append(calls, argv)
		if argv[0] == "fail" {
			return errors.New("fail: boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("REPL: %v", err)
	}

	want := [][]string{{"greet", "bob"}, {"say", "hello world"}, {"fail"}}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %q, want %q", calls, want)
	}
	if s := errOut.String(); !strings.Contains(s, "split") || !strings.Contains(s, "fail: boom") {
		t.Errorf("stderr = %q", s)
	}
	if out.Len() != 0 {
		t.Errorf("prompt written for piped input: %q", out.String())
	}
}

func TestREPLStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Console{In: strings.NewReader("greet\n"), Out: io.Discard, Err: io.Discard}
	err := c.REPL(ctx, "> ", func(context.Context, []string) error {
		t.Fatal("handler called after cancel")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
