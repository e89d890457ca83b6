package blocks

import (
	"strings"
	"testing"
)

func TestClassify_TableThenText(t *testing.T) {
	got := Classify("01/15 Coffee\t4.50\nJust a sentence.")
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %v", len(got), got)
	}
	if got[0].Type != Table || got[0].Content != "01/15 Coffee\t4.50" {
		t.Errorf("block 0: got {%s %q}", got[0].Type, got[0].Content)
	}
	if got[1].Type != Text || got[1].Content != "Just a sentence." {
		t.Errorf("block 1: got {%s %q}", got[1].Type, got[1].Content)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	if got := Classify(""); got != nil {
		t.Fatalf("expected no blocks, got %v", got)
	}
	if got := Classify("\n\n  \n"); got != nil {
		t.Fatalf("expected no blocks for blank input, got %v", got)
	}
}

func TestClassify_DateLineVariants(t *testing.T) {
	tableLines := []string{
		"01/15 Coffee Shop 4.50",
		"1-5 Grocery 20.00",
		"01/15/2024 Rent 1200.00",
		"12-31-24 Year end fee 5.00",
	}
	for _, line := range tableLines {
		got := Classify(line)
		if len(got) != 1 || got[0].Type != Table {
			t.Errorf("%q: expected one table block, got %v", line, got)
		}
	}
}

func TestClassify_ColumnarAlignment(t *testing.T) {
	got := Classify("Payee      Memo      Total")
	if len(got) != 1 || got[0].Type != Table {
		t.Fatalf("expected columnar line to classify as table, got %v", got)
	}

	// A single wide gap is not columnar.
	got = Classify("Only one    gap here")
	if len(got) != 1 || got[0].Type != Text {
		t.Fatalf("expected single-gap line to classify as text, got %v", got)
	}
}

func TestClassify_HeaderTokens(t *testing.T) {
	for _, line := range []string{"DATE", "Description of activity", "amount due"} {
		got := Classify(line)
		if len(got) != 1 || got[0].Type != Table {
			t.Errorf("%q: expected table block, got %v", line, got)
		}
	}
	got := Classify("Dated material enclosed")
	if len(got) != 1 || got[0].Type != Text {
		t.Errorf("expected %q to stay prose, got %v", "Dated material enclosed", got)
	}
}

func TestClassify_RunGrouping(t *testing.T) {
	input := strings.Join([]string{
		"Intro paragraph line one.",
		"Intro paragraph line two.",
		"01/01 Opening 100.00",
		"01/02 Coffee 4.50",
		"Closing remark.",
	}, "\n")

	got := Classify(input)
	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %v", len(got), got)
	}
	want := []BlockType{Text, Table, Text}
	for i, bt := range want {
		if got[i].Type != bt {
			t.Errorf("block %d: expected %s, got %s", i, bt, got[i].Type)
		}
	}
	if !strings.Contains(got[1].Content, "01/02 Coffee") {
		t.Errorf("table block missing second row: %q", got[1].Content)
	}
}

func TestClassify_MergesAcrossDroppedBlankRun(t *testing.T) {
	// The blank line classifies as text but trims to nothing; the two
	// table runs around it should merge back into one block.
	input := "01/01 Opening 100.00\n\n01/02 Coffee 4.50"
	got := Classify(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged block, got %d: %v", len(got), got)
	}
	if got[0].Type != Table {
		t.Errorf("expected table block, got %s", got[0].Type)
	}
	if got[0].Content != "01/01 Opening 100.00\n01/02 Coffee 4.50" {
		t.Errorf("unexpected merged content: %q", got[0].Content)
	}
}

func TestClassify_MergeRespectsLimit(t *testing.T) {
	var rows []string
	for i := 0; i < 60; i++ {
		rows = append(rows, "01/15 A recurring subscription charge line item 19.99")
	}
	big := strings.Join(rows, "\n") // well over the 2000-char merge limit
	input := big + "\n\n" + big
	got := Classify(input)
	if len(got) != 2 {
		t.Fatalf("expected merge to stop at the size limit, got %d blocks", len(got))
	}
	for i, b := range got {
		if b.Type != Table {
			t.Errorf("block %d: expected table, got %s", i, b.Type)
		}
	}
}
