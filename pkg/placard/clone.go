package placard

// Clone returns a structurally and stylistically identical copy of the
// document sharing no mutable state with the original. Every render
// works on its own clone, which is what makes concurrent rendering of
// independent shipments safe.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{}
	if d.Blocks != nil {
		out.Blocks = make([]Block, len(d.Blocks))
		for i, block := range d.Blocks {
			out.Blocks[i] = cloneBlock(block)
		}
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, sec := range d.Sections {
			out.Sections[i] = Section{
				HeaderPart: sec.HeaderPart,
				FooterPart: sec.FooterPart,
				Header:     sec.Header.Clone(),
				Footer:     sec.Footer.Clone(),
			}
		}
	}
	return out
}

func cloneBlock(b Block) Block {
	switch el := b.(type) {
	case *Paragraph:
		return cloneParagraph(el)
	case *Table:
		return cloneTable(el)
	default:
		return b
	}
}

func cloneParagraph(p *Paragraph) *Paragraph {
	out := &Paragraph{Format: p.Format}
	out.Format.SpaceBefore = cloneIntPtr(p.Format.SpaceBefore)
	out.Format.SpaceAfter = cloneIntPtr(p.Format.SpaceAfter)
	out.Format.LineSpacing = cloneIntPtr(p.Format.LineSpacing)
	if p.Runs != nil {
		out.Runs = make([]Run, len(p.Runs))
		for i, run := range p.Runs {
			out.Runs[i] = Run{
				Text:   run.Text,
				Break:  run.Break,
				Format: run.Format.clone(),
			}
		}
	}
	return out
}

func (f RunFormat) clone() RunFormat {
	out := RunFormat{}
	if f.Bold != nil {
		v := *f.Bold
		out.Bold = &v
	}
	if f.Italic != nil {
		v := *f.Italic
		out.Italic = &v
	}
	if f.Underline != nil {
		v := *f.Underline
		out.Underline = &v
	}
	if f.FontName != nil {
		v := *f.FontName
		out.FontName = &v
	}
	if f.FontSize != nil {
		v := *f.FontSize
		out.FontSize = &v
	}
	if f.Color != nil {
		v := *f.Color
		out.Color = &v
	}
	return out
}

func cloneTable(t *Table) *Table {
	out := &Table{Style: t.Style}
	if t.ColumnWidths != nil {
		out.ColumnWidths = make([]int, len(t.ColumnWidths))
		copy(out.ColumnWidths, t.ColumnWidths)
	}
	if t.Rows != nil {
		out.Rows = make([]TableRow, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = TableRow{Height: cloneIntPtr(row.Height)}
			if row.Cells != nil {
				out.Rows[i].Cells = make([]TableCell, len(row.Cells))
				for j, cell := range row.Cells {
					out.Rows[i].Cells[j] = TableCell{Width: cloneIntPtr(cell.Width)}
					if cell.Paragraphs != nil {
						paras := make([]*Paragraph, len(cell.Paragraphs))
						for k, para := range cell.Paragraphs {
							paras[k] = cloneParagraph(para)
						}
						out.Rows[i].Cells[j].Paragraphs = paras
					}
				}
			}
		}
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
