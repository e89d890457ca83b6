// Package consolidate packs a multi-page layout document into chunks
// bounded by a character budget, without ever cutting inside a page.
package consolidate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/finchunk/internal/chunk"
	"github.com/dgallion1/finchunk/internal/layout"
	"github.com/dgallion1/finchunk/internal/splitter"
	"github.com/dgallion1/finchunk/internal/table"
)

const (
	tableMarker     = "[TABLE]"
	pageBreakMarker = "\n\n--- page break ---\n\n"
)

var (
	pageNumberLineRe = regexp.MustCompile(`(?i)^\s*(?:page\s+)?\d+\s+of\s+\d+\s*$`)
	boilerplateRe    = regexp.MustCompile(`(?i)member fdic|continued on next page`)
	statementLineRe  = regexp.MustCompile(`(?i)^\s*(?:statement date|account number):`)
)

// pageContent is one page's extracted text plus everything its table
// fragments contributed.
type pageContent struct {
	number       int
	text         string
	meta         chunk.Metadata
	transactions []chunk.Transaction
}

// Consolidate greedily merges pages into chunks of at most maxChars
// characters. A single page larger than the budget still becomes one
// chunk: transaction integrity outranks strict size enforcement at page
// granularity. When the document has no fragment-bearing pages but does
// carry a pre-chunked content array, that content is concatenated and
// split with no transaction awareness.
func Consolidate(doc layout.Document, maxChars int) []chunk.Chunk {
	if !doc.HasFragments() {
		return prechunkedFallback(doc, maxChars)
	}

	var chunks []chunk.Chunk
	var buf strings.Builder
	var meta chunk.Metadata
	var txns []chunk.Transaction
	startPage, endPage := 0, 0

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return
		}
		c := chunk.Chunk{
			Text:         text,
			CharLength:   utf8.RuneCountInString(text),
			HasTable:     meta.HasTransactions,
			PageRange:    formatPageRange(startPage, endPage),
			Transactions: txns,
		}
		if !meta.IsZero() {
			m := meta
			c.Metadata = &m
		}
		chunks = append(chunks, c)
		buf.Reset()
		meta = chunk.Metadata{}
		txns = nil
	}

	for _, page := range doc.Pages {
		pc := extractPage(page)
		if pc.text == "" {
			continue
		}
		switch {
		case buf.Len() == 0:
			buf.WriteString(pc.text)
			meta = pc.meta
			txns = pc.transactions
			startPage, endPage = pc.number, pc.number
		case fitsBudget(buf.String(), pc.text, maxChars):
			buf.WriteString(pageBreakMarker)
			buf.WriteString(pc.text)
			meta = chunk.MergeMetadata(meta, pc.meta)
			txns = append(txns, pc.transactions...)
			endPage = pc.number
		default:
			flush()
			buf.WriteString(pc.text)
			meta = pc.meta
			txns = pc.transactions
			startPage, endPage = pc.number, pc.number
		}
	}
	flush()

	return chunks
}

// extractPage walks a page's fragments in reading order, analyzing and
// parsing table fragments and stripping header/footer noise from text
// fragments.
func extractPage(page layout.Page) pageContent {
	fragments := make([]layout.Fragment, len(page.Fragments))
	copy(fragments, page.Fragments)
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].ReadingOrder < fragments[j].ReadingOrder
	})

	pc := pageContent{number: page.PageNumber}
	var parts []string

	for _, f := range fragments {
		switch f.Type {
		case layout.FragmentTable:
			content := strings.TrimSpace(f.TableContent())
			if content == "" {
				continue
			}
			m := table.Analyze(f.HeaderCells(), content)
			m.TransactionCount = table.CountTransactionRows(content)
			pc.meta = chunk.MergeMetadata(pc.meta, m)
			pc.transactions = append(pc.transactions, table.ParseTransactions(content)...)
			parts = append(parts, tableMarker+"\n"+content)
		default:
			content := stripHeaderFooter(f.Content)
			if content != "" {
				parts = append(parts, content)
			}
		}
	}

	pc.text = strings.Join(parts, "\n\n")
	return pc
}

// stripHeaderFooter drops page furniture: page-number lines,
// boilerplate disclosures, statement header lines and document codes.
// Headers and footers are suppressed entirely, not de-duplicated.
func stripHeaderFooter(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isHeaderFooterLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isHeaderFooterLine(line string) bool {
	if pageNumberLineRe.MatchString(line) {
		return true
	}
	if boilerplateRe.MatchString(line) {
		return true
	}
	if statementLineRe.MatchString(line) {
		return true
	}
	return isDocumentCodeLine(line)
}

// isDocumentCodeLine matches fixed-format reference codes: a line of
// nothing but capitals, digits and dashes with at least one of each
// character class.
func isDocumentCodeLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 6 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range line {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '-':
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

func fitsBudget(current, next string, maxChars int) bool {
	total := utf8.RuneCountInString(current) +
		utf8.RuneCountInString(pageBreakMarker) +
		utf8.RuneCountInString(next)
	return total <= maxChars
}

func formatPageRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// prechunkedFallback concatenates a document's pre-chunked content and
// runs it through the generic splitter.
func prechunkedFallback(doc layout.Document, maxChars int) []chunk.Chunk {
	if len(doc.Chunks) == 0 {
		return nil
	}
	parts := make([]string, 0, len(doc.Chunks))
	for _, pre := range doc.Chunks {
		if t := strings.TrimSpace(pre.Content); t != "" {
			parts = append(parts, t)
		}
	}
	var chunks []chunk.Chunk
	for _, seg := range splitter.Split(strings.Join(parts, "\n\n"), maxChars) {
		chunks = append(chunks, chunk.Chunk{
			Text:       seg,
			CharLength: utf8.RuneCountInString(seg),
		})
	}
	return chunks
}
