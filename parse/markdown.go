package parse

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// markdownText renders Markdown source as plain text: one line per block,
// markup removed, soft line breaks joined with a space.
func markdownText(src []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var (
		blocks []string
		sb     strings.Builder
	)
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			if entering {
				sb.Reset()
			} else if s := strings.TrimSpace(sb.String()); s != "" {
				blocks = append(blocks, s)
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				var code strings.Builder
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					code.Write(seg.Value(src))
				}
				if s := strings.TrimRight(code.String(), "\n"); s != "" {
					blocks = append(blocks, s)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
				switch {
				case node.HardLineBreak():
					sb.WriteByte('\n')
				case node.SoftLineBreak():
					sb.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				sb.Write(node.Label(src))
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(blocks, "\n")
}
