package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/finchunk/internal/chunk"
)

// placeholderDescription is used when stripping dates and amounts from a
// row leaves nothing behind.
const placeholderDescription = "Transaction"

// amountFormat is the table-wide signal for how row amounts encode
// direction, resolved once before the row loop.
type amountFormat int

const (
	// formatAmbiguous: no table-wide signal; rows classify by keyword.
	formatAmbiguous amountFormat = iota
	// formatDebitCredit: the body names debit/credit columns; negative
	// currency tokens mark debits.
	formatDebitCredit
	// formatSigned: amounts carry an explicit -$ sign for debits.
	formatSigned
)

var (
	debitCreditWordRe = regexp.MustCompile(`(?i)\bdebits?\b|\bcredits?\b`)
	signedAmountRe    = regexp.MustCompile(`-\$\d`)

	// Date families in priority order.
	monthDayDateRe = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:,?\s+\d{4})?`)
	numericDateRe  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)
	isoDateRe      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	currencyTokenRe = regexp.MustCompile(`-?\$?\d[\d,]*(?:\.\d+)?`)

	columnHeaderRe = regexp.MustCompile(`(?i)date|description|amount|balance|debit|credit|withdrawal|deposit`)
	summaryLineRe  = regexp.MustCompile(`(?i)\b(?:total|subtotal|beginning balance|ending balance|opening balance|closing balance|balance forward)\b`)

	creditKeywordRe = regexp.MustCompile(`(?i)deposit|credit|incoming|wire in`)
	debitKeywordRe  = regexp.MustCompile(`(?i)withdrawal|debit|outgoing|wire out|payment|fee|charge`)
)

type token struct {
	raw   string
	value float64
}

// ParseTransactions extracts structured transaction rows from the text
// of a classified table block. Rows that cannot be parsed are skipped,
// never reported as errors; results on ambiguous statement layouts are
// a documented approximation.
func ParseTransactions(tableText string) []chunk.Transaction {
	dateRe := detectDatePattern(tableText)
	if dateRe == nil {
		return nil
	}
	format := detectFormat(tableText)

	var txns []chunk.Transaction
	for i, line := range strings.Split(tableText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// The first few lines are often column headers.
		if i < 3 && columnHeaderRe.MatchString(line) && !dateRe.MatchString(line) {
			continue
		}
		if summaryLineRe.MatchString(line) {
			continue
		}

		date := dateRe.FindString(line)
		if date == "" {
			continue
		}
		working := strings.Replace(line, date, "", 1)

		tokens := extractTokens(working)
		if len(tokens) == 0 {
			continue
		}

		tx := chunk.Transaction{
			Date:        date,
			Description: buildDescription(working),
			RawText:     line,
		}
		resolveAmount(&tx, tokens, format, line)
		txns = append(txns, tx)
	}
	return txns
}

// detectDatePattern returns the first date family matching anywhere in
// the body, or nil when the table carries no recognizable dates.
func detectDatePattern(body string) *regexp.Regexp {
	switch {
	case monthDayDateRe.MatchString(body):
		return monthDayDateRe
	case numericDateRe.MatchString(body):
		return numericDateRe
	case isoDateRe.MatchString(body):
		return isoDateRe
	}
	return nil
}

func detectFormat(body string) amountFormat {
	if debitCreditWordRe.MatchString(body) {
		return formatDebitCredit
	}
	if signedAmountRe.MatchString(body) {
		return formatSigned
	}
	return formatAmbiguous
}

// extractTokens pulls currency-like numbers from a row (after the date
// substring has been removed), dropping zero and unparsable values.
func extractTokens(s string) []token {
	var tokens []token
	for _, raw := range currencyTokenRe.FindAllString(s, -1) {
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || v == 0 || math.IsNaN(v) {
			continue
		}
		tokens = append(tokens, token{raw: raw, value: v})
	}
	return tokens
}

// resolveAmount fills in Amount, Type and Balance according to the
// table-wide format signal.
//
// With three or more tokens on one row (amount + fee + balance) only
// the first and last are considered; middle tokens are ignored. The
// upstream layouts never exercise this shape, so it stays a deliberate
// approximation.
func resolveAmount(tx *chunk.Transaction, tokens []token, format amountFormat, line string) {
	first, last := tokens[0], tokens[len(tokens)-1]

	switch format {
	case formatDebitCredit:
		debitIdx := -1
		for i, tok := range tokens {
			if strings.HasPrefix(tok.raw, "-$") {
				debitIdx = i
				break
			}
		}
		if debitIdx >= 0 {
			tx.Type = chunk.TypeDebit
			tx.Amount = math.Abs(tokens[debitIdx].value)
			if len(tokens) >= 2 && debitIdx != len(tokens)-1 {
				tx.Balance = balanceOf(last)
			}
			return
		}
		tx.Type = chunk.TypeCredit
		tx.Amount = math.Abs(first.value)
		if len(tokens) >= 2 {
			tx.Balance = balanceOf(last)
		}

	case formatSigned:
		negIdx := -1
		for i, tok := range tokens {
			if tok.value < 0 {
				negIdx = i
				break
			}
		}
		if negIdx >= 0 {
			tx.Type = chunk.TypeDebit
			tx.Amount = math.Abs(tokens[negIdx].value)
		} else {
			tx.Type = chunk.TypeCredit
			tx.Amount = first.value
		}
		if len(tokens) > 1 {
			tx.Balance = balanceOf(last)
		}

	default: // formatAmbiguous
		tx.Amount = math.Abs(first.value)
		if len(tokens) >= 2 {
			tx.Balance = balanceOf(last)
		}
		switch {
		case creditKeywordRe.MatchString(line):
			tx.Type = chunk.TypeCredit
		case debitKeywordRe.MatchString(line):
			tx.Type = chunk.TypeDebit
		default:
			tx.Type = chunk.TypeUnknown
		}
	}
}

func balanceOf(tok token) *float64 {
	v := tok.value
	return &v
}

// buildDescription strips every currency token from the date-less row
// and collapses whitespace.
func buildDescription(working string) string {
	desc := currencyTokenRe.ReplaceAllString(working, "")
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		return placeholderDescription
	}
	return desc
}
