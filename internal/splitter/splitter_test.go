package splitter

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split("", 100); got != nil {
		t.Fatalf("expected no segments, got %v", got)
	}
	if got := Split("   \n\t ", 100); got != nil {
		t.Fatalf("expected no segments for whitespace-only input, got %v", got)
	}
}

func TestSplit_FitsInOneSegment(t *testing.T) {
	got := Split("hello world", 100)
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}
	if got[0] != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got[0])
	}
}

func TestSplit_HardBoundary(t *testing.T) {
	input := strings.Repeat("a", 100)
	got := Split(input, 50)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	for i, seg := range got {
		if len(seg) > 50 {
			t.Errorf("segment %d exceeds max: %d chars", i, len(seg))
		}
	}
	if strings.Join(got, "") != input {
		t.Errorf("concatenation does not reproduce the input")
	}
}

func TestSplit_PrefersParagraphBreak(t *testing.T) {
	first := strings.Repeat("x", 300)
	second := strings.Repeat("y", 300)
	input := first + "\n\n" + second

	got := Split(input, 500)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if got[0] != first {
		t.Errorf("expected first segment to end at the paragraph break, got %d chars", len(got[0]))
	}
	if got[1] != second {
		t.Errorf("expected second segment to be the second paragraph, got %d chars", len(got[1]))
	}
}

func TestSplit_PrefersSentenceBreak(t *testing.T) {
	sentence := strings.Repeat("w", 298) + ". "
	input := sentence + strings.Repeat("z", 300)

	got := Split(input, 500)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if !strings.HasSuffix(got[0], ".") {
		t.Errorf("expected first segment to end with the sentence period, got %q tail", got[0][len(got[0])-5:])
	}
}

func TestSplit_IgnoresShallowBreakpoint(t *testing.T) {
	// A break only 50 chars into the window must not be taken.
	input := strings.Repeat("a", 49) + ". " + strings.Repeat("b", 500)
	got := Split(input, 400)
	if len(got[0]) != 400 {
		t.Errorf("expected a hard cut at 400, got segment of %d chars", len(got[0]))
	}
}

func TestSplit_TrimIdempotence(t *testing.T) {
	input := "  Some padded text that should split the same either way.  "
	a := Split(input, 20)
	b := Split(strings.TrimSpace(input), 20)
	if len(a) != len(b) {
		t.Fatalf("segment counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("segment %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestSplit_CoveragePreservesContent(t *testing.T) {
	input := "The first sentence here. The second sentence follows. " +
		strings.Repeat("filler ", 200) + "\n\nA closing paragraph."
	got := Split(input, 300)

	strip := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	if strip(strings.Join(got, " ")) != strip(input) {
		t.Errorf("non-whitespace content was lost or altered across segments")
	}
}
