package placard

import "fmt"

// Page pairs a group key with the replacement map for its rendering.
type Page struct {
	Key          string
	Replacements ReplacementMap
}

// RenderObserver receives progress and degradation callbacks during
// assembly. It is an explicit parameter rather than ambient state so
// the assembler stays a pure function of (template, pages).
type RenderObserver interface {
	// GroupRendered fires after each page has been rendered and merged,
	// with 1-based page and the total page count.
	GroupRendered(key string, page, total int)
	// CopyDegraded fires when a structural copy failed and the page was
	// appended through the plain-text fallback instead.
	CopyDegraded(key string, err error)
}

type nopObserver struct{}

func (nopObserver) GroupRendered(string, int, int) {}
func (nopObserver) CopyDegraded(string, error)     {}

// LogObserver adapts a Logger into a RenderObserver.
type LogObserver struct {
	Logger *Logger
}

func (o LogObserver) GroupRendered(key string, page, total int) {
	o.Logger.Debug("rendered group %s (%d/%d)", key, page, total)
}

func (o LogObserver) CopyDegraded(key string, err error) {
	o.Logger.Warn("formatting lost for group %s, fell back to plain text: %v", key, err)
}

// AssembleResult is the outcome of assembling one shipment's pages.
type AssembleResult struct {
	Doc   *Document
	Pages int
	// Degraded is set when at least one page was appended text-only
	// because its structural copy failed. The document is still usable
	// but callers must surface the warning, never treat it as a clean
	// success.
	Degraded bool
}

// Assemble renders one template instance per page and concatenates the
// renderings with page breaks into a single document. The first page's
// rendering becomes the output; every later page is appended after a
// page break via a full structural copy. The template itself is never
// mutated: each page renders from a fresh clone.
func Assemble(template *Document, pages []Page, obs RenderObserver) (*AssembleResult, error) {
	if template == nil {
		return nil, &TemplateUnavailableError{Cause: fmt.Errorf("nil template")}
	}
	if len(pages) == 0 {
		return nil, &EmptyGroupSetError{}
	}
	if obs == nil {
		obs = nopObserver{}
	}

	result := &AssembleResult{Pages: len(pages)}

	for i, page := range pages {
		rendered := template.Clone()
		Substitute(rendered, page.Replacements)

		if i == 0 {
			result.Doc = rendered
		} else {
			result.Doc.AddPageBreak()
			if err := appendStructural(result.Doc, rendered); err != nil {
				appendPlainText(result.Doc, rendered)
				result.Degraded = true
				obs.CopyDegraded(page.Key, err)
			}
		}
		obs.GroupRendered(page.Key, i+1, len(pages))
	}

	return result, nil
}

// appendStructural appends the source body's blocks to dst, preserving
// paragraph- and run-level formatting and table structure. It validates
// before mutating so a failed copy leaves dst unchanged past the page
// break already added.
func appendStructural(dst, src *Document) error {
	for _, block := range src.Blocks {
		if err := validateBlock(block); err != nil {
			return err
		}
	}
	for _, block := range src.Blocks {
		dst.Blocks = append(dst.Blocks, cloneBlock(block))
	}
	return nil
}

func validateBlock(block Block) error {
	switch el := block.(type) {
	case *Paragraph:
		return nil
	case *Table:
		if len(el.Rows) == 0 {
			return &StructuralCopyError{Op: "table copy", Reason: "table has no rows"}
		}
		cols := len(el.Rows[0].Cells)
		if cols == 0 {
			return &StructuralCopyError{Op: "table copy", Reason: "table has no columns"}
		}
		for i, row := range el.Rows {
			if len(row.Cells) != cols {
				return &StructuralCopyError{
					Op:     "table copy",
					Reason: fmt.Sprintf("row %d has %d cells, expected %d", i, len(row.Cells), cols),
				}
			}
			for j, cell := range row.Cells {
				if len(cell.Paragraphs) == 0 {
					return &StructuralCopyError{
						Op:     "table copy",
						Reason: fmt.Sprintf("cell %d,%d has no paragraphs", i, j),
					}
				}
			}
		}
		return nil
	default:
		return &StructuralCopyError{Op: "block copy", Reason: fmt.Sprintf("unknown block type %T", block)}
	}
}

// appendPlainText copies only the text of the source body, dropping all
// formatting. Block counts are preserved for paragraphs; tables keep
// their cell text in the widest rectangle the rows allow.
func appendPlainText(dst, src *Document) {
	for _, block := range src.Blocks {
		switch el := block.(type) {
		case *Paragraph:
			p := dst.AppendParagraph()
			if text := el.Text(); text != "" {
				p.AppendRun(text, RunFormat{})
			}
		case *Table:
			rows := len(el.Rows)
			cols := 0
			for _, row := range el.Rows {
				if len(row.Cells) > cols {
					cols = len(row.Cells)
				}
			}
			t, err := dst.AppendTable(rows, cols)
			if err != nil {
				continue
			}
			for i, row := range el.Rows {
				for j := range row.Cells {
					if text := row.Cells[j].Text(); text != "" {
						t.Rows[i].Cells[j].Paragraphs[0].AppendRun(text, RunFormat{})
					}
				}
			}
		}
	}
}
