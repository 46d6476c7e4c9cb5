package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownFlattener converts Markdown into plain text by walking the goldmark AST.
type MarkdownFlattener struct {
	parser goldmark.Markdown
}

// NewMarkdownFlattener creates a new MarkdownFlattener.
func NewMarkdownFlattener() *MarkdownFlattener {
	return &MarkdownFlattener{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Flatten returns the textual content of a Markdown document. Block
// elements end up on separate lines and table cells are joined with " | ".
func (m *MarkdownFlattener) Flatten(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	doc := m.parser.Parser().Parse(text.NewReader(content))

	var lines []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if line := nodeText(node, content); line != "" {
				lines = append(lines, line)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			var b strings.Builder
			segments := node.Lines()
			for i := 0; i < segments.Len(); i++ {
				seg := segments.At(i)
				b.Write(seg.Value(content))
			}
			if line := strings.TrimSpace(b.String()); line != "" {
				lines = append(lines, line)
			}
			return ast.WalkSkipChildren, nil
		case *extast.TableRow, *extast.TableHeader:
			if line := tableRowText(node, content); line != "" {
				lines = append(lines, line)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(lines, "\n")
}

// nodeText concatenates the inline text below n.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.URL(content))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func tableRowText(row ast.Node, content []byte) string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*extast.TableCell); ok {
			cells = append(cells, nodeText(c, content))
		}
	}
	return strings.TrimSpace(strings.Join(cells, " | "))
}
