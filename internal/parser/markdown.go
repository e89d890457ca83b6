package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser flattens Markdown to plain text for the text path.
// Pipe tables come out as tab-joined cell lines so the block classifier
// recognizes them as tabular content.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (Input, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Input{}, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var parts []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if t := string(node.Text(src)); t != "" {
				parts = append(parts, t)
			}
		case *east.Table:
			if rows := tableLines(node, src); len(rows) > 0 {
				parts = append(parts, strings.Join(rows, "\n"))
			}
		default:
			if t := extractText(n, src); t != "" {
				parts = append(parts, t)
			}
		}
	}

	return Input{Text: strings.Join(parts, "\n\n")}, nil
}

// tableLines flattens a pipe table into tab-joined cell lines, header
// row first.
func tableLines(tbl *east.Table, src []byte) []string {
	var lines []string
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(extractText(cell, src)))
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return lines
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
