package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/finchunk/internal/layout"
)

func TestForFile_Dispatch(t *testing.T) {
	cases := map[string]bool{
		"statement.pdf":  true,
		"notes.TXT":      true,
		"report.docx":    true,
		"ledger.csv":     true,
		"summary.md":     true,
		"index.html":     true,
		"archive.zip":    false,
		"statement.jpeg": false,
	}
	for name, want := range cases {
		if got := IsSupportedExtension(name); got != want {
			t.Errorf("%s: supported=%v, want %v", name, got, want)
		}
		_, err := ForFile(name)
		if want && err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if !want && err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestTextParser(t *testing.T) {
	in, err := (&TextParser{}).Parse(strings.NewReader("hello world"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Text != "hello world" {
		t.Errorf("text: got %q", in.Text)
	}
}

func TestCSVParser_SinglePageTableDocument(t *testing.T) {
	csvData := "Date,Description,Withdrawals,Deposits\n01/02,Payroll,,2500.00\n01/03,Rent,1200.00,\n"
	in, err := (&CSVParser{}).Parse(strings.NewReader(csvData), "ledger.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Document == nil {
		t.Fatal("expected a document input")
	}
	if len(in.Document.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(in.Document.Pages))
	}
	frags := in.Document.Pages[0].Fragments
	if len(frags) != 1 || frags[0].Type != layout.FragmentTable {
		t.Fatalf("expected a single table fragment, got %+v", frags)
	}
	if len(frags[0].Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(frags[0].Rows))
	}
	if frags[0].Rows[0][2] != "Withdrawals" {
		t.Errorf("header cell: got %q", frags[0].Rows[0][2])
	}
	if !strings.Contains(frags[0].Content, "01/02\tPayroll") {
		t.Errorf("content not tab-joined: %q", frags[0].Content)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	in, err := (&CSVParser{}).Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Document == nil || !in.Document.IsEmpty() {
		t.Errorf("expected an empty document, got %+v", in.Document)
	}
}

func TestMarkdownParser_FlattensWithTables(t *testing.T) {
	md := strings.Join([]string{
		"# Statement",
		"",
		"Opening summary paragraph.",
		"",
		"| Date | Description | Amount |",
		"| --- | --- | --- |",
		"| 01/15 | Coffee | 4.50 |",
	}, "\n")

	in, err := (&MarkdownParser{}).Parse(strings.NewReader(md), "statement.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(in.Text, "Statement") {
		t.Errorf("heading missing: %q", in.Text)
	}
	if !strings.Contains(in.Text, "Opening summary paragraph.") {
		t.Errorf("paragraph missing: %q", in.Text)
	}
	if !strings.Contains(in.Text, "Date\tDescription\tAmount") {
		t.Errorf("table header row not tab-joined: %q", in.Text)
	}
	if !strings.Contains(in.Text, "01/15\tCoffee\t4.50") {
		t.Errorf("table body row not tab-joined: %q", in.Text)
	}
}

func TestHTMLParser_Passthrough(t *testing.T) {
	in, err := (&HTMLParser{}).Parse(strings.NewReader("<p>hi</p>"), "index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.HTML != "<p>hi</p>" {
		t.Errorf("html: got %q", in.HTML)
	}
}
