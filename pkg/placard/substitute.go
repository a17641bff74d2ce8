package placard

import "strings"

// ReplacementMap maps literal placeholder tokens (for example
// "{{Ship To}}") to plain replacement strings. Keys are case-sensitive
// and exact; values are never re-expanded.
type ReplacementMap map[string]string

// Substitute replaces every token of the map in every paragraph of the
// document, including paragraphs inside table cells and section headers
// and footers. Values are treated as pre-validated strings: no
// truncation, no escaping. Paragraphs containing none of the tokens are
// left untouched.
func Substitute(doc *Document, replacements ReplacementMap) {
	if doc == nil || len(replacements) == 0 {
		return
	}
	substituteBlocks(doc.Blocks, replacements)
	for i := range doc.Sections {
		if h := doc.Sections[i].Header; h != nil {
			substituteBlocks(h.Blocks, replacements)
		}
		if f := doc.Sections[i].Footer; f != nil {
			substituteBlocks(f.Blocks, replacements)
		}
	}
}

func substituteBlocks(blocks []Block, replacements ReplacementMap) {
	for _, block := range blocks {
		switch el := block.(type) {
		case *Paragraph:
			substituteInParagraph(el, replacements)
		case *Table:
			for r := range el.Rows {
				for c := range el.Rows[r].Cells {
					for _, para := range el.Rows[r].Cells[c].Paragraphs {
						substituteInParagraph(para, replacements)
					}
				}
			}
		}
	}
}

func substituteInParagraph(p *Paragraph, replacements ReplacementMap) {
	for token, value := range replacements {
		if token == "" {
			continue
		}
		// Occurrences are processed left to right, re-scanning after
		// each replacement since offsets shift. Counting up front also
		// keeps values that happen to contain a token key from being
		// expanded again.
		n := strings.Count(p.Text(), token)
		for i := 0; i < n; i++ {
			replaceOnce(p, token, value)
		}
	}
}

// replaceOnce replaces the leftmost occurrence of token in the paragraph.
//
// Fast path: the token lies entirely within one run, so the substring is
// swapped in place and every other run keeps its identity and formatting.
//
// Slow path: the token spans run boundaries. The paragraph is rebuilt as
// up to three runs: the text before the token styled like the first
// original run, the replacement styled like the anchor run, and the text
// after styled like the last original run. Formatting transitions that
// were strictly inside the before or after text collapse to one style;
// in practice authors put whole tokens inside a single style, so the
// common case loses nothing.
func replaceOnce(p *Paragraph, token, value string) {
	occ, ok := findToken(p, token)
	if !ok {
		return
	}

	if len(occ.affected) == 1 {
		run := &p.Runs[occ.affected[0]]
		if strings.Contains(run.Text, token) {
			run.Text = strings.Replace(run.Text, token, value, 1)
			return
		}
	}

	rebuildAcrossRuns(p, occ, value)
}

func rebuildAcrossRuns(p *Paragraph, occ occurrence, value string) {
	if len(p.Runs) == 0 {
		return
	}

	// Snapshot text and full formats before any mutation.
	original := make([]Run, len(p.Runs))
	copy(original, p.Runs)

	full := p.Text()
	before := full[:occ.start]
	after := full[occ.end:]

	anchorFormat := original[0].Format
	if occ.anchor >= 0 && occ.anchor < len(original) {
		anchorFormat = original[occ.anchor].Format
	}

	p.Clear()
	if before != "" {
		p.AppendRun(before, original[0].Format.clone())
	}
	p.AppendRun(value, anchorFormat.clone())
	if after != "" {
		p.AppendRun(after, original[len(original)-1].Format.clone())
	}
}
