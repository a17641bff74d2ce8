package placard

import (
	"reflect"
	"testing"
)

func sampleDocument() *Document {
	doc := &Document{}

	p := doc.AppendParagraph()
	p.Format = ParagraphFormat{
		Style:       "PlacardBody",
		Alignment:   "center",
		SpaceBefore: intPtr(120),
		SpaceAfter:  intPtr(240),
	}
	p.AppendRun("Ship to: ", RunFormat{Bold: boolPtr(true), FontSize: floatPtr(24)})
	p.AppendRun("{{Ship To}}", RunFormat{Color: &RGB{R: 0xc0}})

	table, _ := doc.AppendTable(2, 2)
	table.Style = "TableGrid"
	table.ColumnWidths = []int{4000, 4000}
	table.Rows[0].Height = intPtr(400)
	table.Rows[0].Cells[0].Width = intPtr(4000)
	table.Rows[0].Cells[0].Paragraphs[0].AppendRun("{{DO #}}", RunFormat{Underline: boolPtr(true)})

	header := &Document{}
	header.AppendParagraph().AppendRun("{{Shipment Nbr}}", RunFormat{FontName: strPtr("Arial")})
	doc.Sections = []Section{{HeaderPart: "word/header1.xml", Header: header}}

	return doc
}

func TestCloneDeepEquality(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()
	if !reflect.DeepEqual(doc, clone) {
		t.Fatalf("clone differs from original:\noriginal: %+v\nclone: %+v", doc, clone)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	// Mutate everything mutable in the clone.
	clone.Blocks[0].(*Paragraph).Runs[1].Text = "Acme Corp"
	*clone.Blocks[0].(*Paragraph).Format.SpaceBefore = 999
	*clone.Blocks[0].(*Paragraph).Runs[0].Format.Bold = false
	tbl := clone.Blocks[1].(*Table)
	tbl.ColumnWidths[0] = 1
	*tbl.Rows[0].Cells[0].Width = 1
	tbl.Rows[0].Cells[0].Paragraphs[0].Runs[0].Text = "0001234567"
	clone.Sections[0].Header.Blocks[0].(*Paragraph).Runs[0].Text = "9010157586"

	orig := doc.Blocks[0].(*Paragraph)
	if orig.Runs[1].Text != "{{Ship To}}" {
		t.Errorf("original run text mutated through clone")
	}
	if *orig.Format.SpaceBefore != 120 {
		t.Errorf("original spacing mutated through clone")
	}
	if !*orig.Runs[0].Format.Bold {
		t.Errorf("original bold flag mutated through clone")
	}
	origTbl := doc.Blocks[1].(*Table)
	if origTbl.ColumnWidths[0] != 4000 || *origTbl.Rows[0].Cells[0].Width != 4000 {
		t.Errorf("original table widths mutated through clone")
	}
	if origTbl.Rows[0].Cells[0].Paragraphs[0].Text() != "{{DO #}}" {
		t.Errorf("original cell text mutated through clone")
	}
	if doc.Sections[0].Header.Blocks[0].(*Paragraph).Text() != "{{Shipment Nbr}}" {
		t.Errorf("original header mutated through clone")
	}
}

func TestCloneNil(t *testing.T) {
	var doc *Document
	if doc.Clone() != nil {
		t.Errorf("Clone of nil document is not nil")
	}
}

func TestCloneEmptySlicesStayNil(t *testing.T) {
	clone := (&Document{}).Clone()
	if clone.Blocks != nil || clone.Sections != nil {
		t.Errorf("clone of empty document grew slices: %+v", clone)
	}
}
