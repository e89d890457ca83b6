package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/finchunk/internal/layout"
)

// CSVParser renders a CSV file as a one-page layout document holding a
// single table fragment, so the document path can analyze its columns
// and extract transactions.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (Input, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Input{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Input{Document: &layout.Document{}}, nil
	}

	lines := make([]string, 0, len(records))
	for _, row := range records {
		lines = append(lines, strings.Join(row, "\t"))
	}

	doc := &layout.Document{
		Pages: []layout.Page{
			{
				PageNumber: 1,
				Fragments: []layout.Fragment{
					{
						ReadingOrder: 1,
						Type:         layout.FragmentTable,
						Rows:         records,
						Content:      strings.Join(lines, "\n"),
					},
				},
			},
		},
	}
	return Input{Document: doc}, nil
}
