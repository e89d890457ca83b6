// Package markup turns raw HTML into segmentation-ready text: table
// rows come out as tab-joined cell lines, everything else as
// markup-stripped plain text.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Extraction is the text view of an HTML document.
type Extraction struct {
	// Text is the full document text in source order; table rows are
	// rendered as tab-joined cell lines.
	Text string
	// TableCount is the number of <table> elements encountered.
	TableCount int
}

// Extract parses markup and flattens it to text. Script, style and
// navigation chrome are skipped, matching what a reader would consider
// document content.
func Extract(markup string) (Extraction, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Extraction{}, fmt.Errorf("parse html: %w", err)
	}

	var ex Extraction
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "header", "footer":
				return
			case "table":
				ex.TableCount++
				if rows := tableRows(n); len(rows) > 0 {
					lines := make([]string, 0, len(rows))
					for _, row := range rows {
						lines = append(lines, strings.Join(row, "\t"))
					}
					parts = append(parts, strings.Join(lines, "\n"))
				}
				return
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				if t := textContent(n); t != "" {
					parts = append(parts, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	ex.Text = strings.Join(parts, "\n\n")
	return ex, nil
}

// tableRows flattens a <table> element into rows of cell text.
func tableRows(table *html.Node) [][]string {
	var rows [][]string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			var cellWalk func(*html.Node)
			cellWalk = func(c *html.Node) {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, textContent(c))
					return
				}
				for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
					cellWalk(cc)
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				cellWalk(c)
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	return rows
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
