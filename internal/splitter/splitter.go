package splitter

import "strings"

// minBreakOffset guards against degenerate near-empty segments: a
// natural breakpoint is only taken when it sits deeper than this into
// the candidate window.
const minBreakOffset = 200

// Split segments text into pieces of at most maxChars characters,
// preferring to cut at the last paragraph break or sentence end inside
// each window. Segments are trimmed; empty segments are dropped. The
// function is pure: same inputs, same output.
//
// Split knows nothing about tables or transactions — callers must only
// hand it content where a mid-content cut is acceptable.
func Split(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" || maxChars <= 0 {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return []string{text}
	}

	var segments []string
	cursor := 0
	for cursor < len(runes) {
		end := cursor + maxChars
		if end >= len(runes) {
			end = len(runes)
		} else {
			window := string(runes[cursor:end])
			if cut := lastBreakpoint(window); cut > minBreakOffset {
				end = cursor + cut
			}
		}

		seg := strings.TrimSpace(string(runes[cursor:end]))
		if seg != "" {
			segments = append(segments, seg)
		}
		cursor = end
	}
	return segments
}

// lastBreakpoint returns the rune offset just past the last natural
// break in window (a double newline, else a period followed by a
// space), or -1 when no break exists.
func lastBreakpoint(window string) int {
	if i := strings.LastIndex(window, "\n\n"); i >= 0 {
		return runeLen(window[:i])
	}
	if i := strings.LastIndex(window, ". "); i >= 0 {
		// Keep the period with the preceding segment.
		return runeLen(window[:i+1])
	}
	return -1
}

func runeLen(s string) int {
	return len([]rune(s))
}
