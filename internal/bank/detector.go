// Package bank identifies the originating institution of a document by
// scanning its text against a curated name list.
package bank

import "strings"

// Unknown is returned when no known institution name appears.
const Unknown = "Unknown"

// Detector matches document text against an ordered list of institution
// names. List order is a priority: the first name that appears wins, so
// callers should put more specific names first.
type Detector struct {
	names []string
}

// NewDetector builds a detector over the given ordered name list. An
// empty list yields a detector that always reports Unknown.
func NewDetector(names []string) *Detector {
	return &Detector{names: names}
}

// Detect returns the first listed institution name found in text via a
// case-insensitive substring scan, or Unknown. No fuzzy matching, no
// scoring.
func (d *Detector) Detect(text string) string {
	lower := strings.ToLower(text)
	for _, name := range d.names {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	return Unknown
}

// DefaultNames returns the built-in institution list. Multi-word names
// precede the short ones they contain so the specific match wins.
func DefaultNames() []string {
	return []string{
		"Bank of America",
		"Wells Fargo",
		"JPMorgan Chase",
		"Chase",
		"Citibank",
		"Capital One",
		"U.S. Bank",
		"US Bank",
		"PNC Bank",
		"PNC",
		"TD Bank",
		"Truist",
		"Goldman Sachs",
		"Charles Schwab",
		"American Express",
		"Discover",
		"Ally Bank",
		"Ally",
		"Navy Federal",
		"Fifth Third",
		"KeyBank",
		"Regions Bank",
		"Citizens Bank",
		"M&T Bank",
		"Huntington",
		"Santander",
		"HSBC",
		"Barclays",
		"Metro Bank",
		"Lloyds",
		"NatWest",
		"Monzo",
		"Revolut",
	}
}
