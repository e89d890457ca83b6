// Package parser converts uploaded files into segmentation inputs:
// plain text, raw HTML, or a pre-parsed layout document, depending on
// what the format can preserve.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/finchunk/internal/layout"
)

// Input is a parsed upload. Exactly one field is populated; the API
// layer routes it to the matching processing path.
type Input struct {
	Text     string
	HTML     string
	Document *layout.Document
}

// Parser converts raw file bytes into a segmentation Input.
type Parser interface {
	Parse(r io.Reader, filename string) (Input, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// TextParser passes plain text through untouched.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}, fmt.Errorf("read text: %w", err)
	}
	return Input{Text: string(data)}, nil
}

// HTMLParser passes raw markup through to the HTML path.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}, fmt.Errorf("read html: %w", err)
	}
	return Input{HTML: string(data)}, nil
}
