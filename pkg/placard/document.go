package placard

import "strings"

// Block is any element that can appear in a document body.
// Blocks keep their order through every transformation.
type Block interface {
	isBlock()
}

// Document is an ordered sequence of body blocks plus zero or more
// sections carrying headers and footers. Headers and footers are
// themselves documents (without sections of their own).
type Document struct {
	Blocks   []Block
	Sections []Section
}

// Section owns an optional header and footer. HeaderPart and FooterPart
// record which package part each came from so a loaded template can be
// written back; they are empty for documents built in memory.
type Section struct {
	HeaderPart string
	FooterPart string
	Header     *Document
	Footer     *Document
}

// Paragraph is an ordered sequence of runs with paragraph-level formatting.
// Concatenating all run texts in order yields the paragraph's full text.
type Paragraph struct {
	Format ParagraphFormat
	Runs   []Run
}

func (p *Paragraph) isBlock() {}

// ParagraphFormat holds paragraph-level attributes. Spacing values are in
// twentieths of a point, line spacing in 240ths of a line, matching the
// WordprocessingML units they round-trip through.
type ParagraphFormat struct {
	Style       string
	Alignment   string
	SpaceBefore *int
	SpaceAfter  *int
	LineSpacing *int
}

// BreakType marks a run as a line or page break instead of (or in
// addition to) text.
type BreakType int

const (
	BreakNone BreakType = iota
	BreakLine
	BreakPage
)

// Run is a maximal span of text sharing one explicit style.
type Run struct {
	Text   string
	Break  BreakType
	Format RunFormat
}

// RunFormat holds run-level character formatting. Nil pointers mean
// "inherit the style default", which is distinct from explicitly false.
type RunFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	FontName  *string
	FontSize  *float64 // points
	Color     *RGB
}

// RGB is a 24-bit text color.
type RGB struct {
	R, G, B uint8
}

const hexDigits = "0123456789ABCDEF"

// Hex returns the color as an uppercase RRGGBB string.
func (c RGB) Hex() string {
	b := make([]byte, 6)
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[i*2] = hexDigits[v>>4]
		b[i*2+1] = hexDigits[v&0x0f]
	}
	return string(b)
}

// ParseRGB parses an RRGGBB hex string. It returns false for anything
// that is not exactly six hex digits (including "auto", which Word uses
// for theme-resolved colors).
func ParseRGB(s string) (RGB, bool) {
	if len(s) != 6 {
		return RGB{}, false
	}
	var v [6]uint8
	for i := 0; i < 6; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v[i] = c - '0'
		case c >= 'a' && c <= 'f':
			v[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v[i] = c - 'A' + 10
		default:
			return RGB{}, false
		}
	}
	return RGB{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
	}, true
}

// Table is a grid of cells. Rows may differ in cell count only as an
// error condition; the assembler treats ragged tables as structurally
// uncopyable.
type Table struct {
	Style        string
	ColumnWidths []int
	Rows         []TableRow
}

func (t *Table) isBlock() {}

// TableRow is one row of cells.
type TableRow struct {
	Height *int
	Cells  []TableCell
}

// TableCell owns one or more paragraphs, always at least one.
type TableCell struct {
	Width      *int
	Paragraphs []*Paragraph
}

// Text returns the concatenated text of all runs in the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].Text)
	}
	return sb.String()
}

// Clear removes all runs. Paragraph-level formatting is kept.
func (p *Paragraph) Clear() {
	p.Runs = nil
}

// AppendRun appends a text run with the given formatting and returns it.
func (p *Paragraph) AppendRun(text string, format RunFormat) *Run {
	p.Runs = append(p.Runs, Run{Text: text, Format: format})
	return &p.Runs[len(p.Runs)-1]
}

// Text returns the cell's text, paragraphs joined with newlines.
func (c *TableCell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, para := range c.Paragraphs {
		parts = append(parts, para.Text())
	}
	return strings.Join(parts, "\n")
}

// AppendParagraph appends an empty paragraph to the document body and
// returns it. Existing blocks are never reordered.
func (d *Document) AppendParagraph() *Paragraph {
	p := &Paragraph{}
	d.Blocks = append(d.Blocks, p)
	return p
}

// AppendTable appends a rows x cols table, every cell pre-seeded with one
// empty paragraph.
func (d *Document) AppendTable(rows, cols int) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, &StructuralCopyError{Op: "append table", Reason: "table dimensions must be positive"}
	}
	t := &Table{Rows: make([]TableRow, rows)}
	for i := range t.Rows {
		t.Rows[i].Cells = make([]TableCell, cols)
		for j := range t.Rows[i].Cells {
			t.Rows[i].Cells[j].Paragraphs = []*Paragraph{{}}
		}
	}
	d.Blocks = append(d.Blocks, t)
	return t, nil
}

// AddPageBreak appends a paragraph holding a single page-break run, the
// way word processors start a new page mid-flow.
func (d *Document) AddPageBreak() {
	p := d.AppendParagraph()
	p.Runs = append(p.Runs, Run{Break: BreakPage})
}

// IsPageBreak reports whether the block is a paragraph whose only
// content is a page break.
func IsPageBreak(b Block) bool {
	p, ok := b.(*Paragraph)
	if !ok || len(p.Runs) != 1 {
		return false
	}
	return p.Runs[0].Break == BreakPage && p.Runs[0].Text == ""
}

// Text returns the plain text of the document body, one line per
// paragraph and cell paragraph, in block order. Headers and footers are
// not included.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, block := range d.Blocks {
		switch el := block.(type) {
		case *Paragraph:
			sb.WriteString(el.Text())
			sb.WriteByte('\n')
		case *Table:
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					sb.WriteString(cell.Text())
					sb.WriteByte('\n')
				}
			}
		}
	}
	return sb.String()
}
