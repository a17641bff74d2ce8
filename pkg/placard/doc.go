// Package placard generates multi-page shipping placard documents from
// tabular order data and a DOCX template.
//
// The engine fills {{Token}} placeholders in a template while
// preserving the template's per-character formatting, renders one page
// per order (DO) group of a shipment, and concatenates the pages with
// page breaks into a single output document.
//
// Basic usage:
//
//	tmpl, err := placard.LoadTemplate("Template/placard_template.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, err := placard.NewGenerator(tmpl.Document())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Render("9010157586", rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = tmpl.SaveFile(result.Doc, "Placards/Placard_9010157586.docx")
//
// The template is never mutated: every page renders from a fresh deep
// clone, which makes Render safe to call concurrently for independent
// shipments.
package placard
