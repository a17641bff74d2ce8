package placard

import "strings"

// runSpan maps one run to its half-open character interval within the
// paragraph's concatenated text. The table is rebuilt per substitution
// pass because replacements shift every offset after them.
type runSpan struct {
	index int
	start int
	end   int
}

// paragraphSpans computes cumulative run-length offsets in one pass.
// Runs carrying no text (pure breaks) get empty spans; an empty span
// overlaps a match only when it sits strictly inside it.
func paragraphSpans(p *Paragraph) []runSpan {
	spans := make([]runSpan, len(p.Runs))
	pos := 0
	for i := range p.Runs {
		next := pos + len(p.Runs[i].Text)
		spans[i] = runSpan{index: i, start: pos, end: next}
		pos = next
	}
	return spans
}

// occurrence describes one match of a token in a paragraph: its span in
// the full text, the runs overlapping that span, and the anchor run (the
// run containing the start offset) whose formatting the replacement
// inherits.
type occurrence struct {
	start    int
	end      int
	anchor   int
	affected []int
}

// findToken locates the leftmost occurrence of token in the paragraph's
// full text. Tokens are matched literally and case-sensitively; an
// absent token reports ok=false, which callers treat as a no-op.
func findToken(p *Paragraph, token string) (occurrence, bool) {
	if token == "" {
		return occurrence{}, false
	}
	full := p.Text()
	start := strings.Index(full, token)
	if start < 0 {
		return occurrence{}, false
	}
	occ := occurrence{start: start, end: start + len(token), anchor: -1}
	for _, span := range paragraphSpans(p) {
		if span.start < occ.end && span.end > occ.start {
			occ.affected = append(occ.affected, span.index)
		}
		if span.start <= occ.start && occ.start < span.end {
			occ.anchor = span.index
		}
	}
	// Degenerate paragraphs (all-empty runs) cannot match a non-empty
	// token, so affected is non-empty whenever ok is true.
	if occ.anchor < 0 && len(occ.affected) > 0 {
		occ.anchor = occ.affected[0]
	}
	return occ, true
}
