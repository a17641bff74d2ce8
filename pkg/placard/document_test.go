package placard

import (
	"testing"
)

// paragraphOf builds a paragraph from alternating text pieces, each in
// its own run with the given formats (nil-padded when formats run out).
func paragraphOf(texts []string, formats ...RunFormat) *Paragraph {
	p := &Paragraph{}
	for i, text := range texts {
		f := RunFormat{}
		if i < len(formats) {
			f = formats[i]
		}
		p.AppendRun(text, f)
	}
	return p
}

func boolPtr(v bool) *bool          { return &v }
func strPtr(v string) *string       { return &v }
func floatPtr(v float64) *float64   { return &v }
func intPtr(v int) *int             { return &v }

func TestParagraphText(t *testing.T) {
	tests := []struct {
		name string
		runs []string
		want string
	}{
		{"empty", nil, ""},
		{"single run", []string{"hello"}, "hello"},
		{"multiple runs", []string{"Ship to: ", "{{Ship To}}", "!"}, "Ship to: {{Ship To}}!"},
		{"empty runs between", []string{"a", "", "b"}, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paragraphOf(tt.runs)
			if got := p.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParagraphClearKeepsFormat(t *testing.T) {
	p := paragraphOf([]string{"x"})
	p.Format.Style = "Heading1"
	p.Clear()
	if len(p.Runs) != 0 {
		t.Errorf("Clear() left %d runs", len(p.Runs))
	}
	if p.Format.Style != "Heading1" {
		t.Errorf("Clear() dropped paragraph format")
	}
}

func TestAppendTable(t *testing.T) {
	doc := &Document{}
	table, err := doc.AppendTable(2, 3)
	if err != nil {
		t.Fatalf("AppendTable(2, 3) returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	for i, row := range table.Rows {
		if len(row.Cells) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row.Cells))
		}
		for j, cell := range row.Cells {
			if len(cell.Paragraphs) != 1 {
				t.Errorf("cell %d,%d has %d paragraphs, want 1", i, j, len(cell.Paragraphs))
			}
		}
	}
	if len(doc.Blocks) != 1 {
		t.Errorf("document has %d blocks, want 1", len(doc.Blocks))
	}
}

func TestAppendTableRejectsBadDimensions(t *testing.T) {
	doc := &Document{}
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 1}} {
		if _, err := doc.AppendTable(dims[0], dims[1]); !IsStructuralCopy(err) {
			t.Errorf("AppendTable(%d, %d) = %v, want StructuralCopyError", dims[0], dims[1], err)
		}
	}
}

func TestAddPageBreak(t *testing.T) {
	doc := &Document{}
	doc.AppendParagraph().AppendRun("page one", RunFormat{})
	doc.AddPageBreak()

	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(doc.Blocks))
	}
	if IsPageBreak(doc.Blocks[0]) {
		t.Errorf("text paragraph misreported as page break")
	}
	if !IsPageBreak(doc.Blocks[1]) {
		t.Errorf("appended block is not a page break")
	}
}

func TestIsPageBreakRejectsMixedContent(t *testing.T) {
	p := &Paragraph{Runs: []Run{{Text: "x", Break: BreakPage}}}
	if IsPageBreak(p) {
		t.Errorf("paragraph with text misreported as page break")
	}
	p2 := &Paragraph{Runs: []Run{{Break: BreakPage}, {Text: "y"}}}
	if IsPageBreak(p2) {
		t.Errorf("multi-run paragraph misreported as page break")
	}
}

func TestTableCellText(t *testing.T) {
	cell := TableCell{Paragraphs: []*Paragraph{
		paragraphOf([]string{"first"}),
		paragraphOf([]string{"second"}),
	}}
	if got := cell.Text(); got != "first\nsecond" {
		t.Errorf("Text() = %q, want %q", got, "first\nsecond")
	}
}

func TestDocumentText(t *testing.T) {
	doc := &Document{}
	doc.AppendParagraph().AppendRun("heading", RunFormat{})
	table, _ := doc.AppendTable(1, 2)
	table.Rows[0].Cells[0].Paragraphs[0].AppendRun("a", RunFormat{})
	table.Rows[0].Cells[1].Paragraphs[0].AppendRun("b", RunFormat{})

	want := "heading\na\nb\n"
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		color RGB
		want  string
	}{
		{RGB{}, "000000"},
		{RGB{R: 255, G: 255, B: 255}, "FFFFFF"},
		{RGB{R: 0x1a, G: 0x2b, B: 0x3c}, "1A2B3C"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Hex(%+v) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"FF0000", RGB{R: 255}, true},
		{"1a2b3c", RGB{R: 0x1a, G: 0x2b, B: 0x3c}, true},
		{"auto", RGB{}, false},
		{"", RGB{}, false},
		{"GGGGGG", RGB{}, false},
		{"FFF", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseRGB(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseRGB(%q) = %+v, %v, want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
