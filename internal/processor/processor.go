// Package processor wires the segmentation components into the three
// entry paths: raw HTML, plain text, and pre-parsed layout documents.
// Each call is synchronous and touches no shared state, so documents
// may be processed concurrently without coordination.
package processor

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/finchunk/internal/bank"
	"github.com/dgallion1/finchunk/internal/blocks"
	"github.com/dgallion1/finchunk/internal/chunk"
	"github.com/dgallion1/finchunk/internal/consolidate"
	"github.com/dgallion1/finchunk/internal/layout"
	"github.com/dgallion1/finchunk/internal/markup"
	"github.com/dgallion1/finchunk/internal/splitter"
)

// ErrNoInput is returned when a request carries none of the three
// recognizable inputs. Malformed content is never an error: it degrades
// to fewer transactions, an Unknown bank, or plain text chunks.
var ErrNoInput = errors.New("no usable input: expected html, text, or a parsed document")

const (
	// DefaultMaxChars applies when the caller sends no or an invalid
	// chunk size.
	DefaultMaxChars = 12000
	// MaxCharsCap is the safety ceiling on the chunk size budget.
	MaxCharsCap = 60000

	// bankScanLimit bounds how much document text the bank detector
	// scans.
	bankScanLimit = 4000
)

// Result is one segmentation run's output.
type Result struct {
	Chunks []chunk.Chunk `json:"chunks"`
	Stats  chunk.Stats   `json:"stats"`
}

// Processor runs the segmentation paths.
type Processor struct {
	detector *bank.Detector
	log      *slog.Logger
}

// New builds a processor around an institution detector.
func New(detector *bank.Detector, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{detector: detector, log: log}
}

// NormalizeMaxChars sanitizes a caller-supplied chunk size: invalid
// values fall back to the default, oversized ones are capped.
func NormalizeMaxChars(n int) int {
	if n <= 0 {
		return DefaultMaxChars
	}
	if n > MaxCharsCap {
		return MaxCharsCap
	}
	return n
}

// ProcessHTML extracts text and tables from markup and segments it via
// the block classifier and splitter.
func (p *Processor) ProcessHTML(rawHTML string, maxChars int) (Result, error) {
	if rawHTML == "" {
		return Result{}, ErrNoInput
	}
	ex, err := markup.Extract(rawHTML)
	if err != nil {
		return Result{}, err
	}
	res := p.segmentText(ex.Text, maxChars)
	// Markup knows the real table count; the block classifier only
	// sees the flattened text.
	if ex.TableCount > 0 {
		res.Stats.TablesDetected = ex.TableCount
	}
	return res, nil
}

// ProcessText segments raw plain text.
func (p *Processor) ProcessText(text string, maxChars int) (Result, error) {
	if text == "" {
		return Result{}, ErrNoInput
	}
	return p.segmentText(text, maxChars), nil
}

// ProcessDocument consolidates a pre-parsed layout document into
// page-spanning chunks. The bank name is stamped on every chunk:
// upstream labels win, otherwise detection runs over the document text.
func (p *Processor) ProcessDocument(doc layout.Document, maxChars int) (Result, error) {
	if doc.IsEmpty() {
		return Result{}, ErrNoInput
	}
	maxChars = NormalizeMaxChars(maxChars)

	chunks := consolidate.Consolidate(doc, maxChars)

	bankName := doc.Labels.Bank
	if bankName == "" {
		bankName = p.detector.Detect(truncate(documentText(doc), bankScanLimit))
	}
	for i := range chunks {
		chunks[i].BankName = bankName
	}

	finalize(chunks)

	tables := 0
	for _, page := range doc.Pages {
		for _, f := range page.Fragments {
			if f.Type == layout.FragmentTable {
				tables++
			}
		}
	}

	p.log.Debug("document processed",
		"pages", len(doc.Pages),
		"chunks", len(chunks),
		"tables", tables,
		"bank", bankName,
	)
	return Result{Chunks: chunks, Stats: buildStats(chunks, tables, bankName)}, nil
}

// segmentText is the shared HTML/text tail: classify blocks, split the
// oversized ones, detect the bank once for stats.
func (p *Processor) segmentText(text string, maxChars int) Result {
	maxChars = NormalizeMaxChars(maxChars)

	var chunks []chunk.Chunk
	tableBlocks := 0
	for _, block := range blocks.Classify(text) {
		isTable := block.Type == blocks.Table
		if isTable {
			tableBlocks++
		}
		for _, seg := range splitter.Split(block.Content, maxChars) {
			chunks = append(chunks, chunk.Chunk{
				Text:       seg,
				CharLength: utf8.RuneCountInString(seg),
				HasTable:   isTable,
			})
		}
	}
	finalize(chunks)

	// The HTML/text paths compute the bank once for stats, not per
	// chunk.
	bankName := p.detector.Detect(truncate(text, bankScanLimit))

	return Result{Chunks: chunks, Stats: buildStats(chunks, tableBlocks, bankName)}
}

// finalize assigns sequential identity in a second pass, once the full
// sequence is known.
func finalize(chunks []chunk.Chunk) {
	for i := range chunks {
		chunks[i].ID = i + 1
		chunks[i].Index = i + 1
		chunks[i].TotalCount = len(chunks)
	}
}

func buildStats(chunks []chunk.Chunk, tables int, bankName string) chunk.Stats {
	totalChars := 0
	for _, c := range chunks {
		totalChars += c.CharLength
	}
	avg := 0
	if len(chunks) > 0 {
		avg = int(math.Round(float64(totalChars) / float64(len(chunks))))
	}
	return chunk.Stats{
		TotalChunks:    len(chunks),
		TotalChars:     totalChars,
		AvgChunkSize:   avg,
		TablesDetected: tables,
		BankName:       bankName,
	}
}

// documentText concatenates fragment text for bank detection, stopping
// once the scan limit is covered.
func documentText(doc layout.Document) string {
	var b strings.Builder
	for _, page := range doc.Pages {
		for _, f := range page.Fragments {
			if b.Len() > bankScanLimit {
				return b.String()
			}
			b.WriteString(f.Content)
			b.WriteByte('\n')
		}
	}
	for _, pre := range doc.Chunks {
		if b.Len() > bankScanLimit {
			return b.String()
		}
		b.WriteString(pre.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
