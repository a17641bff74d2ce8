package placard

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
)

var (
	headerPartPattern = regexp.MustCompile(`^word/header(\d+)\.xml$`)
	footerPartPattern = regexp.MustCompile(`^word/footer(\d+)\.xml$`)
)

// Template is a loaded DOCX template: the original package bytes plus
// the parsed styled text model. The model is read-only from here on;
// every render clones it.
type Template struct {
	source []byte
	doc    *Document
}

// LoadTemplate reads and parses a DOCX template from a file path.
func LoadTemplate(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateUnavailableError{Path: path, Cause: err}
	}
	tmpl, err := TemplateFromBytes(content)
	if err != nil {
		return nil, &TemplateUnavailableError{Path: path, Cause: err}
	}
	return tmpl, nil
}

// TemplateFromBytes parses a DOCX template held in memory.
func TemplateFromBytes(content []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, file := range zr.File {
		parts[file.Name] = file
	}
	if _, ok := parts["word/document.xml"]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing word/document.xml")
	}

	docXML, err := readPart(parts["word/document.xml"])
	if err != nil {
		return nil, err
	}
	blocks, err := parseDocumentXML(docXML)
	if err != nil {
		return nil, err
	}

	doc := &Document{Blocks: blocks}

	headers := collectParts(zr, headerPartPattern)
	footers := collectParts(zr, footerPartPattern)
	sections := len(headers)
	if len(footers) > sections {
		sections = len(footers)
	}
	for i := 0; i < sections; i++ {
		sec := Section{}
		if i < len(headers) {
			content, err := readPart(parts[headers[i]])
			if err != nil {
				return nil, err
			}
			hf, err := parseHeaderFooterXML(content)
			if err != nil {
				return nil, err
			}
			sec.HeaderPart = headers[i]
			sec.Header = hf
		}
		if i < len(footers) {
			content, err := readPart(parts[footers[i]])
			if err != nil {
				return nil, err
			}
			hf, err := parseHeaderFooterXML(content)
			if err != nil {
				return nil, err
			}
			sec.FooterPart = footers[i]
			sec.Footer = hf
		}
		doc.Sections = append(doc.Sections, sec)
	}

	return &Template{source: content, doc: doc}, nil
}

// Document returns the parsed template model. Callers must not mutate
// it; Clone before rendering (the generator and assembler do).
func (t *Template) Document() *Document {
	return t.doc
}

// Save writes a rendered document as a complete DOCX to w. The original
// template package supplies every part the model does not carry
// (styles, fonts, settings, content types); document.xml and any header
// and footer parts the document's sections point at are regenerated.
func (t *Template) Save(doc *Document, w io.Writer) error {
	if doc == nil {
		return NewDocumentError("save", "", fmt.Errorf("nil document"))
	}

	replaced := map[string][]byte{
		"word/document.xml": marshalDocumentXML(doc),
	}
	for _, sec := range doc.Sections {
		if sec.HeaderPart != "" && sec.Header != nil {
			replaced[sec.HeaderPart] = marshalHeaderFooterXML(sec.Header, "hdr")
		}
		if sec.FooterPart != "" && sec.Footer != nil {
			replaced[sec.FooterPart] = marshalHeaderFooterXML(sec.Footer, "ftr")
		}
	}

	zr, err := zip.NewReader(bytes.NewReader(t.source), int64(len(t.source)))
	if err != nil {
		return NewDocumentError("save", "", fmt.Errorf("failed to read source zip: %w", err))
	}

	zw := zip.NewWriter(w)
	for _, file := range zr.File {
		fw, err := zw.Create(file.Name)
		if err != nil {
			return NewDocumentError("save", file.Name, err)
		}
		if content, ok := replaced[file.Name]; ok {
			if _, err := fw.Write(content); err != nil {
				return NewDocumentError("save", file.Name, err)
			}
			continue
		}
		fr, err := file.Open()
		if err != nil {
			return NewDocumentError("save", file.Name, err)
		}
		_, err = io.Copy(fw, fr)
		fr.Close()
		if err != nil {
			return NewDocumentError("save", file.Name, err)
		}
	}
	return zw.Close()
}

// SaveFile writes a rendered document as a DOCX file at path.
func (t *Template) SaveFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := t.Save(doc, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func readPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return content, nil
}

func collectParts(zr *zip.Reader, pattern *regexp.Regexp) []string {
	var names []string
	for _, file := range zr.File {
		if pattern.MatchString(file.Name) {
			names = append(names, file.Name)
		}
	}
	sort.Strings(names)
	return names
}
