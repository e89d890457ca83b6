package chunk

// Chunk is one bounded-size unit of output text plus structural metadata.
type Chunk struct {
	ID         int    `json:"id"`
	Index      int    `json:"index"`
	TotalCount int    `json:"total_count"`
	CharLength int    `json:"char_length"`
	HasTable   bool   `json:"has_table"`
	Text       string `json:"text"`

	// PageRange is set on the document path only: "3" or "1-2".
	PageRange string `json:"page_range,omitempty"`

	// BankName is the detected institution, or "Unknown".
	BankName string `json:"bank_name,omitempty"`

	Metadata     *Metadata     `json:"metadata,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// Transaction is one inferred ledger line. Date is the raw matched
// substring, not a parsed calendar value; Amount is a non-negative
// magnitude with Type carrying the direction.
type Transaction struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Type        string   `json:"type"`
	Balance     *float64 `json:"balance,omitempty"`
	RawText     string   `json:"raw_text"`
}

// Transaction type values.
const (
	TypeDebit   = "debit"
	TypeCredit  = "credit"
	TypeUnknown = "unknown"
)

// Metadata describes the column roles inferred for a table, accumulated
// across every table fragment that contributes to one chunk.
type Metadata struct {
	HasTransactions   bool     `json:"has_transactions"`
	DebitColumns      []string `json:"debit_columns"`
	CreditColumns     []string `json:"credit_columns"`
	DateColumn        string   `json:"date_column,omitempty"`
	DescriptionColumn string   `json:"description_column,omitempty"`
	TransactionCount  int      `json:"transaction_count"`
}

// MergeMetadata combines two metadata values into a new one without
// mutating either: set union on column lists, logical OR on
// HasTransactions, first-wins on the singular columns, and a running
// sum on TransactionCount.
func MergeMetadata(a, b Metadata) Metadata {
	out := Metadata{
		HasTransactions:   a.HasTransactions || b.HasTransactions,
		DebitColumns:      unionColumns(a.DebitColumns, b.DebitColumns),
		CreditColumns:     unionColumns(a.CreditColumns, b.CreditColumns),
		DateColumn:        a.DateColumn,
		DescriptionColumn: a.DescriptionColumn,
		TransactionCount:  a.TransactionCount + b.TransactionCount,
	}
	if out.DateColumn == "" {
		out.DateColumn = b.DateColumn
	}
	if out.DescriptionColumn == "" {
		out.DescriptionColumn = b.DescriptionColumn
	}
	return out
}

// IsZero reports whether no analysis result has been recorded yet.
func (m Metadata) IsZero() bool {
	return !m.HasTransactions &&
		len(m.DebitColumns) == 0 &&
		len(m.CreditColumns) == 0 &&
		m.DateColumn == "" &&
		m.DescriptionColumn == "" &&
		m.TransactionCount == 0
}

func unionColumns(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, col := range a {
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	for _, col := range b {
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	return out
}

// AppendColumn adds a column name to a deduplicated set, preserving
// insertion order.
func AppendColumn(cols []string, name string) []string {
	for _, c := range cols {
		if c == name {
			return cols
		}
	}
	return append(cols, name)
}

// Stats summarizes one segmentation run.
type Stats struct {
	TotalChunks    int    `json:"total_chunks"`
	TotalChars     int    `json:"total_chars"`
	AvgChunkSize   int    `json:"avg_chunk_size"`
	TablesDetected int    `json:"tables_detected"`
	BankName       string `json:"bank_name"`
}
