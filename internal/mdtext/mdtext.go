// Package mdtext renders Markdown as plain text for terminal help output.
// Inline markup is dropped, paragraphs are separated by a blank line, list
// items are bulleted, and code blocks keep their lines verbatim.
package mdtext

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Plain converts src to plain text. Every line of the result is prefixed
// with indent.
func Plain(src, indent string) string {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string
	var cur strings.Builder
	flush := func(prefix string) {
		if s := strings.TrimSpace(cur.String()); s != "" {
			blocks = append(blocks, prefix+s)
		}
		cur.Reset()
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Text:
			if entering {
				cur.Write(n.Segment.Value(source))
				if n.SoftLineBreak() || n.HardLineBreak() {
					cur.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				cur.Write(n.Value)
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				blocks = append(blocks, codeLines(n, source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if !entering {
				prefix := ""
				if _, inList := n.Parent().(*ast.ListItem); inList {
					prefix = "- "
				}
				flush(prefix)
			}
		}
		return ast.WalkContinue, nil
	})
	flush("")

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 && !(isBullet(block) && isBullet(blocks[i-1])) {
			b.WriteString("\n")
		}
		for _, line := range strings.Split(block, "\n") {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString(indent + line + "\n")
		}
	}
	return b.String()
}

func codeLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.WriteString("  ")
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func isBullet(block string) bool {
	return strings.HasPrefix(block, "- ")
}
