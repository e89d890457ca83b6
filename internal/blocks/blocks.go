// Package blocks partitions a text body into alternating table-like and
// prose-like runs using line-level heuristics.
package blocks

import (
	"regexp"
	"strings"
)

// BlockType tags a run of lines as tabular or prose.
type BlockType string

const (
	Table BlockType = "table"
	Text  BlockType = "text"
)

// Block is one contiguous run of same-type lines.
type Block struct {
	Type    BlockType
	Content string
}

// mergeLimit bounds the re-merge of adjacent same-type runs so that an
// isolated misclassified line cannot glue two huge blocks together.
const mergeLimit = 2000

var (
	// Leading DD/DD or DD-DD date, optional year, followed by whitespace.
	leadingDateRe = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\s`)
	// Leading statement column header.
	headerTokenRe = regexp.MustCompile(`(?i)^(date|description|amount)\b`)
	// Runs of two or more spaces, checked for non-space neighbors below.
	spaceRunRe = regexp.MustCompile(` {2,}`)
)

// Classify splits text into an ordered sequence of blocks covering all
// non-blank content. Adjacent same-type runs left behind by dropped
// blank runs are merged back while the combined size stays under the
// merge limit.
func Classify(text string) []Block {
	var runs []Block
	var current []string
	currentType := Text
	started := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(current, "\n"))
		if content != "" {
			runs = append(runs, Block{Type: currentType, Content: content})
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		lineType := Text
		if isTableLine(line) {
			lineType = Table
		}
		if !started {
			currentType = lineType
			started = true
		}
		if lineType != currentType {
			flush()
			currentType = lineType
		}
		current = append(current, line)
	}
	flush()

	return mergeAdjacent(runs)
}

// isTableLine applies the line-level table heuristics: a leading date, a
// tab character, columnar space alignment, or a statement header token.
func isTableLine(line string) bool {
	if leadingDateRe.MatchString(line) {
		return true
	}
	if strings.Contains(line, "\t") {
		return true
	}
	if columnarRuns(line) >= 2 {
		return true
	}
	return headerTokenRe.MatchString(strings.TrimSpace(line))
}

// columnarRuns counts runs of >=2 spaces that separate non-space tokens
// on both sides.
func columnarRuns(line string) int {
	count := 0
	for _, loc := range spaceRunRe.FindAllStringIndex(line, -1) {
		if loc[0] > 0 && loc[1] < len(line) {
			count++
		}
	}
	return count
}

func mergeAdjacent(runs []Block) []Block {
	if len(runs) == 0 {
		return nil
	}
	out := []Block{runs[0]}
	for _, run := range runs[1:] {
		last := &out[len(out)-1]
		if run.Type == last.Type && len(last.Content)+len(run.Content) < mergeLimit {
			last.Content += "\n" + run.Content
			continue
		}
		out = append(out, run)
	}
	return out
}
