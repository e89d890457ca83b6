// Package table infers column semantics from statement tables and
// extracts structured transaction rows from their text. Everything here
// is heuristic: results are best-effort, never audited.
package table

import (
	"regexp"
	"strings"

	"github.com/dgallion1/finchunk/internal/chunk"
)

var (
	dateHeaderRe        = regexp.MustCompile(`(?i)date`)
	descriptionHeaderRe = regexp.MustCompile(`(?i)description|concept|detail`)
	debitHeaderRe       = regexp.MustCompile(`(?i)debit|withdrawal|out|payment`)
	creditHeaderRe      = regexp.MustCompile(`(?i)credit|deposit|in|income`)

	// Paired debit/credit column names appearing in flattened body text
	// imply a transaction table even when no header cells survived.
	pairedColumnsRe = regexp.MustCompile(`(?i)debit.*credit|withdrawal.*deposit`)

	// Lines opening with a month name or numeric date, used as a cheap
	// proxy for a transaction row count.
	dateLineRe = regexp.MustCompile(`(?i)^\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}|\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?|\d{4}-\d{2}-\d{2})`)
)

// Analyze inspects header cells and body text and returns the inferred
// column roles. Header matching is case-insensitive substring matching;
// a cell may contribute to more than one role.
func Analyze(headerCells []string, bodyText string) chunk.Metadata {
	var meta chunk.Metadata

	for _, cell := range headerCells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if dateHeaderRe.MatchString(cell) {
			if meta.DateColumn == "" {
				meta.DateColumn = cell
			}
			meta.HasTransactions = true
		}
		if descriptionHeaderRe.MatchString(cell) && meta.DescriptionColumn == "" {
			meta.DescriptionColumn = cell
		}
		if debitHeaderRe.MatchString(cell) {
			meta.DebitColumns = chunk.AppendColumn(meta.DebitColumns, cell)
			meta.HasTransactions = true
		}
		if creditHeaderRe.MatchString(cell) {
			meta.CreditColumns = chunk.AppendColumn(meta.CreditColumns, cell)
			meta.HasTransactions = true
		}
	}

	if pairedColumnsRe.MatchString(bodyText) {
		meta.HasTransactions = true
	}

	return meta
}

// CountTransactionRows counts body lines that open with a date, a cheap
// proxy for the number of rows rather than a verified count.
func CountTransactionRows(bodyText string) int {
	count := 0
	for _, line := range strings.Split(bodyText, "\n") {
		if dateLineRe.MatchString(line) {
			count++
		}
	}
	return count
}
