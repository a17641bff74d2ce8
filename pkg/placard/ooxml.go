package placard

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WordprocessingML parsing and serialization. Only the features the
// styled text model carries survive the round trip: paragraphs, runs,
// bold/italic/underline, font name and size, color, paragraph alignment
// and spacing, tables, and line/page breaks. Everything else in the
// template package is copied through untouched.

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type xmlParagraph struct {
	Props *xmlParaProps `xml:"pPr"`
	Runs  []xmlRun      `xml:"r"`
}

type xmlParaProps struct {
	Style   *xmlVal     `xml:"pStyle"`
	Spacing *xmlSpacing `xml:"spacing"`
	Jc      *xmlVal     `xml:"jc"`
}

type xmlSpacing struct {
	Before string `xml:"before,attr"`
	After  string `xml:"after,attr"`
	Line   string `xml:"line,attr"`
}

type xmlRun struct {
	Props  *xmlRunProps `xml:"rPr"`
	Breaks []xmlBreak   `xml:"br"`
	Text   *xmlText     `xml:"t"`
}

type xmlRunProps struct {
	Fonts     *xmlFonts `xml:"rFonts"`
	Bold      *xmlVal   `xml:"b"`
	Italic    *xmlVal   `xml:"i"`
	Underline *xmlVal   `xml:"u"`
	Color     *xmlVal   `xml:"color"`
	Size      *xmlVal   `xml:"sz"`
}

type xmlFonts struct {
	ASCII string `xml:"ascii,attr"`
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlText struct {
	Space   string `xml:"space,attr"`
	Content string `xml:",chardata"`
}

type xmlBreak struct {
	Type string `xml:"type,attr"`
}

type xmlTable struct {
	Props *xmlTableProps `xml:"tblPr"`
	Grid  *xmlTableGrid  `xml:"tblGrid"`
	Rows  []xmlTableRow  `xml:"tr"`
}

type xmlTableProps struct {
	Style *xmlVal `xml:"tblStyle"`
}

type xmlTableGrid struct {
	Cols []xmlGridCol `xml:"gridCol"`
}

type xmlGridCol struct {
	W string `xml:"w,attr"`
}

type xmlTableRow struct {
	Props *xmlRowProps   `xml:"trPr"`
	Cells []xmlTableCell `xml:"tc"`
}

type xmlRowProps struct {
	Height *xmlVal `xml:"trHeight"`
}

type xmlTableCell struct {
	Props      *xmlCellProps  `xml:"tcPr"`
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlCellProps struct {
	Width *xmlWidth `xml:"tcW"`
}

type xmlWidth struct {
	W    string `xml:"w,attr"`
	Type string `xml:"type,attr"`
}

// parseBlockContent decodes the ordered p/tbl children of a body, hdr,
// or ftr element into model blocks, preserving element order.
func parseBlockContent(d *xml.Decoder, end string) ([]Block, error) {
	var blocks []Block
	for {
		token, err := d.Token()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var para xmlParagraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return nil, err
				}
				blocks = append(blocks, toModelParagraph(&para))
			case "tbl":
				var table xmlTable
				if err := d.DecodeElement(&table, &t); err != nil {
					return nil, err
				}
				blocks = append(blocks, toModelTable(&table))
			}
		case xml.EndElement:
			if t.Name.Local == end {
				return blocks, nil
			}
		}
	}
}

// parseDocumentXML parses word/document.xml into the block list of the
// document body.
func parseDocumentXML(content []byte) ([]Block, error) {
	d := xml.NewDecoder(bytes.NewReader(content))
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no body element found")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		if t, ok := token.(xml.StartElement); ok && t.Name.Local == "body" {
			return parseBlockContent(d, "body")
		}
	}
}

// parseHeaderFooterXML parses a word/headerN.xml or word/footerN.xml
// part. The root element (hdr or ftr) holds the same block content as a
// document body.
func parseHeaderFooterXML(content []byte) (*Document, error) {
	d := xml.NewDecoder(bytes.NewReader(content))
	for {
		token, err := d.Token()
		if err == io.EOF {
			return &Document{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse header/footer: %w", err)
		}
		if t, ok := token.(xml.StartElement); ok && (t.Name.Local == "hdr" || t.Name.Local == "ftr") {
			blocks, err := parseBlockContent(d, t.Name.Local)
			if err != nil {
				return nil, err
			}
			return &Document{Blocks: blocks}, nil
		}
	}
}

func toModelParagraph(p *xmlParagraph) *Paragraph {
	out := &Paragraph{}
	if p.Props != nil {
		if p.Props.Style != nil {
			out.Format.Style = p.Props.Style.Val
		}
		if p.Props.Jc != nil {
			out.Format.Alignment = p.Props.Jc.Val
		}
		if p.Props.Spacing != nil {
			out.Format.SpaceBefore = atoiPtr(p.Props.Spacing.Before)
			out.Format.SpaceAfter = atoiPtr(p.Props.Spacing.After)
			out.Format.LineSpacing = atoiPtr(p.Props.Spacing.Line)
		}
	}
	for i := range p.Runs {
		out.Runs = append(out.Runs, toModelRun(&p.Runs[i]))
	}
	return out
}

func toModelRun(r *xmlRun) Run {
	out := Run{}
	if r.Text != nil {
		out.Text = r.Text.Content
	}
	for _, br := range r.Breaks {
		if br.Type == "page" {
			out.Break = BreakPage
		} else if out.Break == BreakNone {
			out.Break = BreakLine
		}
	}
	if r.Props != nil {
		out.Format = toModelFormat(r.Props)
	}
	return out
}

func toModelFormat(p *xmlRunProps) RunFormat {
	f := RunFormat{}
	if p.Bold != nil {
		v := onOff(p.Bold.Val)
		f.Bold = &v
	}
	if p.Italic != nil {
		v := onOff(p.Italic.Val)
		f.Italic = &v
	}
	if p.Underline != nil {
		v := p.Underline.Val != "none" && p.Underline.Val != ""
		// A bare <w:u/> is meaningless in practice; Word always writes
		// a val. Treat a missing val as single underline.
		if p.Underline.Val == "" {
			v = true
		}
		f.Underline = &v
	}
	if p.Fonts != nil && p.Fonts.ASCII != "" {
		name := p.Fonts.ASCII
		f.FontName = &name
	}
	if p.Size != nil {
		if half, err := strconv.Atoi(p.Size.Val); err == nil {
			pts := float64(half) / 2
			f.FontSize = &pts
		}
	}
	if p.Color != nil {
		if rgb, ok := ParseRGB(p.Color.Val); ok {
			f.Color = &rgb
		}
	}
	return f
}

func toModelTable(t *xmlTable) *Table {
	out := &Table{}
	if t.Props != nil && t.Props.Style != nil {
		out.Style = t.Props.Style.Val
	}
	if t.Grid != nil {
		for _, col := range t.Grid.Cols {
			if w, err := strconv.Atoi(col.W); err == nil {
				out.ColumnWidths = append(out.ColumnWidths, w)
			}
		}
	}
	for _, row := range t.Rows {
		modelRow := TableRow{}
		if row.Props != nil && row.Props.Height != nil {
			modelRow.Height = atoiPtr(row.Props.Height.Val)
		}
		for _, cell := range row.Cells {
			modelCell := TableCell{}
			if cell.Props != nil && cell.Props.Width != nil {
				modelCell.Width = atoiPtr(cell.Props.Width.W)
			}
			for i := range cell.Paragraphs {
				modelCell.Paragraphs = append(modelCell.Paragraphs, toModelParagraph(&cell.Paragraphs[i]))
			}
			if len(modelCell.Paragraphs) == 0 {
				modelCell.Paragraphs = []*Paragraph{{}}
			}
			modelRow.Cells = append(modelRow.Cells, modelCell)
		}
		out.Rows = append(out.Rows, modelRow)
	}
	return out
}

func atoiPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func onOff(val string) bool {
	switch val {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// marshalDocumentXML serializes a document body back to a complete
// word/document.xml part.
func marshalDocumentXML(doc *Document) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="` + wordMLNamespace + `"><w:body>`)
	writeBlocks(&sb, doc.Blocks)
	sb.WriteString(`</w:body></w:document>`)
	return []byte(sb.String())
}

// marshalHeaderFooterXML serializes a header or footer document to its
// part content. root is "hdr" or "ftr".
func marshalHeaderFooterXML(doc *Document, root string) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:` + root + ` xmlns:w="` + wordMLNamespace + `">`)
	if doc != nil {
		writeBlocks(&sb, doc.Blocks)
	}
	sb.WriteString(`</w:` + root + `>`)
	return []byte(sb.String())
}

func writeBlocks(sb *strings.Builder, blocks []Block) {
	for _, block := range blocks {
		switch el := block.(type) {
		case *Paragraph:
			writeParagraph(sb, el)
		case *Table:
			writeTable(sb, el)
		}
	}
}

func writeParagraph(sb *strings.Builder, p *Paragraph) {
	sb.WriteString("<w:p>")
	writeParaProps(sb, p.Format)
	for i := range p.Runs {
		writeRun(sb, &p.Runs[i])
	}
	sb.WriteString("</w:p>")
}

func writeParaProps(sb *strings.Builder, f ParagraphFormat) {
	if f.Style == "" && f.Alignment == "" && f.SpaceBefore == nil && f.SpaceAfter == nil && f.LineSpacing == nil {
		return
	}
	sb.WriteString("<w:pPr>")
	if f.Style != "" {
		sb.WriteString(`<w:pStyle w:val="` + escapeAttr(f.Style) + `"/>`)
	}
	if f.SpaceBefore != nil || f.SpaceAfter != nil || f.LineSpacing != nil {
		sb.WriteString("<w:spacing")
		if f.SpaceBefore != nil {
			sb.WriteString(` w:before="` + strconv.Itoa(*f.SpaceBefore) + `"`)
		}
		if f.SpaceAfter != nil {
			sb.WriteString(` w:after="` + strconv.Itoa(*f.SpaceAfter) + `"`)
		}
		if f.LineSpacing != nil {
			sb.WriteString(` w:line="` + strconv.Itoa(*f.LineSpacing) + `"`)
		}
		sb.WriteString("/>")
	}
	if f.Alignment != "" {
		sb.WriteString(`<w:jc w:val="` + escapeAttr(f.Alignment) + `"/>`)
	}
	sb.WriteString("</w:pPr>")
}

func writeRun(sb *strings.Builder, r *Run) {
	sb.WriteString("<w:r>")
	writeRunProps(sb, r.Format)
	switch r.Break {
	case BreakPage:
		sb.WriteString(`<w:br w:type="page"/>`)
	case BreakLine:
		sb.WriteString("<w:br/>")
	}
	// Newlines inside a value (the deduplicated PO list) become explicit
	// line breaks; raw newlines are not rendered by word processors.
	lines := strings.Split(r.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("<w:br/>")
		}
		if line != "" {
			sb.WriteString(`<w:t xml:space="preserve">`)
			writeEscaped(sb, line)
			sb.WriteString("</w:t>")
		}
	}
	sb.WriteString("</w:r>")
}

func writeRunProps(sb *strings.Builder, f RunFormat) {
	if f.Bold == nil && f.Italic == nil && f.Underline == nil && f.FontName == nil && f.FontSize == nil && f.Color == nil {
		return
	}
	sb.WriteString("<w:rPr>")
	if f.FontName != nil {
		sb.WriteString(`<w:rFonts w:ascii="` + escapeAttr(*f.FontName) + `"/>`)
	}
	if f.Bold != nil {
		writeToggle(sb, "b", *f.Bold)
	}
	if f.Italic != nil {
		writeToggle(sb, "i", *f.Italic)
	}
	if f.Underline != nil {
		if *f.Underline {
			sb.WriteString(`<w:u w:val="single"/>`)
		} else {
			sb.WriteString(`<w:u w:val="none"/>`)
		}
	}
	if f.Color != nil {
		sb.WriteString(`<w:color w:val="` + f.Color.Hex() + `"/>`)
	}
	if f.FontSize != nil {
		half := int(*f.FontSize*2 + 0.5)
		sb.WriteString(`<w:sz w:val="` + strconv.Itoa(half) + `"/>`)
	}
	sb.WriteString("</w:rPr>")
}

func writeToggle(sb *strings.Builder, tag string, on bool) {
	if on {
		sb.WriteString("<w:" + tag + "/>")
	} else {
		sb.WriteString(`<w:` + tag + ` w:val="0"/>`)
	}
}

func writeTable(sb *strings.Builder, t *Table) {
	sb.WriteString("<w:tbl>")
	if t.Style != "" {
		sb.WriteString(`<w:tblPr><w:tblStyle w:val="` + escapeAttr(t.Style) + `"/></w:tblPr>`)
	}
	if len(t.ColumnWidths) > 0 {
		sb.WriteString("<w:tblGrid>")
		for _, w := range t.ColumnWidths {
			sb.WriteString(`<w:gridCol w:w="` + strconv.Itoa(w) + `"/>`)
		}
		sb.WriteString("</w:tblGrid>")
	}
	for _, row := range t.Rows {
		sb.WriteString("<w:tr>")
		if row.Height != nil {
			sb.WriteString(`<w:trPr><w:trHeight w:val="` + strconv.Itoa(*row.Height) + `"/></w:trPr>`)
		}
		for _, cell := range row.Cells {
			sb.WriteString("<w:tc>")
			if cell.Width != nil {
				sb.WriteString(`<w:tcPr><w:tcW w:w="` + strconv.Itoa(*cell.Width) + `" w:type="dxa"/></w:tcPr>`)
			}
			if len(cell.Paragraphs) == 0 {
				// A cell must hold at least one paragraph to open in Word.
				sb.WriteString("<w:p/>")
			}
			for _, para := range cell.Paragraphs {
				writeParagraph(sb, para)
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

func writeEscaped(sb *strings.Builder, s string) {
	_ = xml.EscapeText(sb, []byte(s))
}

func escapeAttr(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
