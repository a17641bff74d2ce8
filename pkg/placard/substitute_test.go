package placard

import (
	"reflect"
	"strings"
	"testing"
)

func TestSubstituteSingleRunKeepsNeighbors(t *testing.T) {
	bold := RunFormat{Bold: boolPtr(true)}
	p := paragraphOf(
		[]string{"Ship to: ", "{{Ship To}} warehouse", " dock 4"},
		RunFormat{}, bold, RunFormat{Italic: boolPtr(true)},
	)
	before := make([]Run, len(p.Runs))
	copy(before, p.Runs)

	substituteInParagraph(p, ReplacementMap{"{{Ship To}}": "Acme Corp"})

	if got := p.Text(); got != "Ship to: Acme Corp warehouse dock 4" {
		t.Fatalf("Text() = %q", got)
	}
	if len(p.Runs) != 3 {
		t.Fatalf("run count changed: %d", len(p.Runs))
	}
	// Untouched runs keep their exact identity.
	if !reflect.DeepEqual(p.Runs[0], before[0]) || !reflect.DeepEqual(p.Runs[2], before[2]) {
		t.Errorf("neighboring runs were modified")
	}
	// The modified run keeps its formatting.
	if !reflect.DeepEqual(p.Runs[1].Format, bold) {
		t.Errorf("replaced run lost its format: %+v", p.Runs[1].Format)
	}
}

func TestSubstituteAcrossRunsFormatRule(t *testing.T) {
	first := RunFormat{Bold: boolPtr(true)}
	anchor := RunFormat{Underline: boolPtr(true)}
	last := RunFormat{Italic: boolPtr(true)}
	p := paragraphOf(
		[]string{"Order ", "{{DO", " #}}", " confirmed"},
		first, anchor, RunFormat{}, last,
	)

	substituteInParagraph(p, ReplacementMap{"{{DO #}}": "0012345678"})

	if got := p.Text(); got != "Order 0012345678 confirmed" {
		t.Fatalf("Text() = %q", got)
	}
	if len(p.Runs) != 3 {
		t.Fatalf("got %d runs, want 3 (before, value, after)", len(p.Runs))
	}
	if p.Runs[0].Text != "Order " || !reflect.DeepEqual(p.Runs[0].Format, first) {
		t.Errorf("before-text run = %q %+v, want first run's format", p.Runs[0].Text, p.Runs[0].Format)
	}
	if p.Runs[1].Text != "0012345678" || !reflect.DeepEqual(p.Runs[1].Format, anchor) {
		t.Errorf("value run = %q %+v, want anchor run's format", p.Runs[1].Text, p.Runs[1].Format)
	}
	if p.Runs[2].Text != " confirmed" || !reflect.DeepEqual(p.Runs[2].Format, last) {
		t.Errorf("after-text run = %q %+v, want last run's format", p.Runs[2].Text, p.Runs[2].Format)
	}
}

func TestSubstituteAcrossRunsNoSurroundingText(t *testing.T) {
	p := paragraphOf([]string{"{{Ship", " To}}"}, RunFormat{Bold: boolPtr(true)}, RunFormat{})

	substituteInParagraph(p, ReplacementMap{"{{Ship To}}": "Acme Corp"})

	if len(p.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(p.Runs))
	}
	if p.Runs[0].Text != "Acme Corp" {
		t.Errorf("Text = %q", p.Runs[0].Text)
	}
	if p.Runs[0].Format.Bold == nil || !*p.Runs[0].Format.Bold {
		t.Errorf("value run did not inherit anchor formatting")
	}
}

func TestSubstituteMultipleOccurrences(t *testing.T) {
	p := paragraphOf([]string{"{{PO}}, {{PO", "}} and {{PO}}"})
	substituteInParagraph(p, ReplacementMap{"{{PO}}": "4500123"})
	if got := p.Text(); got != "4500123, 4500123 and 4500123" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSubstituteValueContainingToken(t *testing.T) {
	// A value that happens to contain a token key must not be expanded
	// again: the occurrence count is fixed before the first replacement.
	p := paragraphOf([]string{"{{PO}}"})
	substituteInParagraph(p, ReplacementMap{"{{PO}}": "literal {{PO}} kept"})
	if got := p.Text(); got != "literal {{PO}} kept" {
		t.Errorf("Text() = %q, value was re-expanded", got)
	}
}

func TestSubstituteEmptyValue(t *testing.T) {
	p := paragraphOf([]string{"Start Ship: ", "{{Start Ship}}"})
	substituteInParagraph(p, ReplacementMap{"{{Start Ship}}": ""})
	if got := p.Text(); got != "Start Ship: " {
		t.Errorf("Text() = %q", got)
	}
}

func TestSubstituteUnmatchedParagraphUntouched(t *testing.T) {
	p := paragraphOf([]string{"plain ", "text"}, RunFormat{Bold: boolPtr(true)})
	before := make([]Run, len(p.Runs))
	copy(before, p.Runs)

	substituteInParagraph(p, ReplacementMap{"{{VAS}}": "VAS"})

	if !reflect.DeepEqual(p.Runs, before) {
		t.Errorf("paragraph without tokens was modified")
	}
}

func TestSubstituteWalksTablesHeadersFooters(t *testing.T) {
	doc := &Document{}
	doc.AppendParagraph().AppendRun("{{Ship To}}", RunFormat{})
	table, _ := doc.AppendTable(1, 2)
	table.Rows[0].Cells[0].Paragraphs[0].AppendRun("{{DO #}}", RunFormat{})
	table.Rows[0].Cells[1].Paragraphs[0].AppendRun("{{Original Qty}}", RunFormat{})

	header := &Document{}
	header.AppendParagraph().AppendRun("Shipment {{Shipment Nbr}}", RunFormat{})
	footer := &Document{}
	footer.AppendParagraph().AppendRun("{{Pmt Term}}", RunFormat{})
	doc.Sections = []Section{{Header: header, Footer: footer}}

	Substitute(doc, ReplacementMap{
		"{{Ship To}}":      "Acme Corp",
		"{{DO #}}":         "0012345678",
		"{{Original Qty}}": "42 Units",
		"{{Shipment Nbr}}": "9010157586",
		"{{Pmt Term}}":     "NET30",
	})

	all := doc.Text() + header.Text() + footer.Text()
	if strings.Contains(all, "{{") {
		t.Errorf("tokens remain after substitution: %q", all)
	}
	if header.Text() != "Shipment 9010157586\n" {
		t.Errorf("header = %q", header.Text())
	}
}

func TestSubstituteTwoTokensOneRun(t *testing.T) {
	p := paragraphOf([]string{"Ship to: {{Ship To}} / Qty {{Original Qty}}"})
	doc := &Document{Blocks: []Block{p}}

	Substitute(doc, ReplacementMap{
		"{{Ship To}}":      "Acme Corp",
		"{{Original Qty}}": "42 Units",
	})

	if got := p.Text(); got != "Ship to: Acme Corp / Qty 42 Units" {
		t.Fatalf("Text() = %q", got)
	}
	if len(p.Runs) != 1 {
		t.Errorf("run count changed: %d", len(p.Runs))
	}
}

func TestSubstituteScenario(t *testing.T) {
	p := paragraphOf(
		[]string{"Ship to: ", "{{Ship To}}", " / Qty ", "{{Original Qty}}"},
		RunFormat{}, RunFormat{Bold: boolPtr(true)}, RunFormat{}, RunFormat{Bold: boolPtr(true)},
	)
	doc := &Document{Blocks: []Block{p}}

	Substitute(doc, ReplacementMap{
		"{{Ship To}}":      "Acme Corp",
		"{{Original Qty}}": "42 Units",
	})

	if got := p.Text(); got != "Ship to: Acme Corp / Qty 42 Units" {
		t.Fatalf("Text() = %q", got)
	}
	if len(p.Runs) != 4 {
		t.Errorf("run count changed: %d", len(p.Runs))
	}
	for _, i := range []int{1, 3} {
		if p.Runs[i].Format.Bold == nil || !*p.Runs[i].Format.Bold {
			t.Errorf("run %d lost bold formatting", i)
		}
	}
}

func TestSubstituteNilAndEmpty(t *testing.T) {
	Substitute(nil, ReplacementMap{"{{PO}}": "x"}) // must not panic

	doc := &Document{}
	doc.AppendParagraph().AppendRun("{{PO}}", RunFormat{})
	Substitute(doc, nil)
	if got := doc.Text(); got != "{{PO}}\n" {
		t.Errorf("empty map modified document: %q", got)
	}
}
