package layout

import "strings"

// Document is a pre-extracted multi-page layout document, the input of
// the document-processing path.
type Document struct {
	Pages  []Page     `json:"pages"`
	Chunks []Prechunk `json:"chunks"`
	Labels Labels     `json:"labels"`
}

// Page holds the layout fragments extracted from one source page.
type Page struct {
	PageNumber int        `json:"pageNumber"`
	Fragments  []Fragment `json:"fragments"`
}

// FragmentType tags a fragment as tabular or prose content.
type FragmentType string

const (
	FragmentTable FragmentType = "table"
	FragmentText  FragmentType = "text"
)

// Fragment is one layout-extracted piece of a page. For table fragments
// Rows carries the structured cells when the upstream extractor could
// recover them; Markdown carries a rendered fallback.
type Fragment struct {
	ReadingOrder int          `json:"readingOrder"`
	Type         FragmentType `json:"type"`
	Content      string       `json:"content"`
	Rows         [][]string   `json:"rows,omitempty"`
	Markdown     string       `json:"markdown,omitempty"`
}

// Prechunk is one entry of a document's pre-chunked content array, used
// only when no fragment-bearing pages exist.
type Prechunk struct {
	Content    string `json:"content"`
	PageNumber int    `json:"pageNumber"`
}

// Labels carries upstream document annotations.
type Labels struct {
	Bank string `json:"bank"`
}

// TableContent returns the best available text for a table fragment:
// tab-joined cell rows, then the markdown rendering, then raw content.
func (f Fragment) TableContent() string {
	if len(f.Rows) > 0 {
		lines := make([]string, 0, len(f.Rows))
		for _, row := range f.Rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		return strings.Join(lines, "\n")
	}
	if f.Markdown != "" {
		return f.Markdown
	}
	return f.Content
}

// HeaderCells returns the first structured row of a table fragment, or
// nil when no cell data survived extraction.
func (f Fragment) HeaderCells() []string {
	if len(f.Rows) == 0 {
		return nil
	}
	return f.Rows[0]
}

// HasFragments reports whether any page carries at least one fragment.
func (d Document) HasFragments() bool {
	for _, p := range d.Pages {
		if len(p.Fragments) > 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the document carries no processable content.
func (d Document) IsEmpty() bool {
	return !d.HasFragments() && len(d.Chunks) == 0
}
