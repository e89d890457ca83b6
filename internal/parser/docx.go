package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/finchunk/internal/layout"
)

// DOCXParser turns a .docx into a one-page layout document, one text
// fragment per paragraph block. Word documents carry no page geometry
// in the body XML, so everything lands on a single synthetic page.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (Input, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "finchunk-docx-*.docx")
	if err != nil {
		return Input{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return Input{}, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return Input{}, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return Input{}, fmt.Errorf("parse docx: %w", err)
	}

	page := layout.Page{PageNumber: 1}
	order := 1
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		page.Fragments = append(page.Fragments, layout.Fragment{
			ReadingOrder: order,
			Type:         layout.FragmentText,
			Content:      text,
		})
		order++
	}

	return Input{Document: &layout.Document{Pages: []layout.Page{page}}}, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
