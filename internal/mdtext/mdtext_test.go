package mdtext

import "testing"

func TestPlain(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		indent string
		want   string
	}{
		{"empty", "", "  ", ""},
		{"paragraph", "Greets **someone** by `name`.", "", "Greets someone by name.\n"},
		{"soft break", "one\ntwo", "", "one two\n"},
		{"paragraphs", "first\n\nsecond", "> ", "> first\n\n> second\n"},
		{"heading", "# Title\n\nbody", "", "Title\n\nbody\n"},
		{"list", "intro\n\n- a\n- b", "  ", "  intro\n\n  - a\n  - b\n"},
		{"link", "see [docs](https://example.com)", "", "see docs\n"},
		{"code block", "run:\n\n```\ncmdtree greet\ncmdtree tree\n```", "", "run:\n\n  cmdtree greet\n  cmdtree tree\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.src, tt.indent); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
