// Package xlsx reads the open order report workbook and turns it into
// validated placard rows. It is the tabular-ingestion collaborator of
// the core engine: everything that leaves this package has already
// passed row validation.
package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sheetCells parses a workbook into the cell grid of its first
// worksheet. Shared strings are resolved; every cell value comes back
// as a string. Rows keep their sheet order.
func sheetCells(content []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	shared, err := loadSharedStrings(zr)
	if err != nil {
		return nil, err
	}

	sheet := firstWorksheet(zr)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rc, err := sheet.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", sheet.Name, err)
	}
	defer rc.Close()

	return parseWorksheet(rc, shared)
}

func firstWorksheet(zr *zip.Reader) *zip.File {
	var best *zip.File
	for _, f := range zr.File {
		if !strings.Contains(f.Name, "worksheets/sheet") {
			continue
		}
		if best == nil || f.Name < best.Name {
			best = f
		}
	}
	return best
}

func loadSharedStrings(zr *zip.Reader) ([]string, error) {
	var file *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "sharedStrings.xml") {
			file = f
			break
		}
	}
	if file == nil {
		return nil, nil
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open sharedStrings.xml: %w", err)
	}
	defer rc.Close()

	var shared []string
	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	var inText bool

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode sharedStrings.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				sb.Reset()
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "si":
				shared = append(shared, sb.String())
			}
		}
	}
	return shared, nil
}

// parseWorksheet streams a worksheet part, resolving cell references to
// column positions and shared-string indexes to text.
func parseWorksheet(r io.Reader, shared []string) ([][]string, error) {
	var rows [][]string
	var current []string
	var cellType string
	var cellCol int
	var inValue, inInline bool
	var value strings.Builder
	nextCol := 0

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode worksheet: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				current = nil
				nextCol = 0
			case "c":
				cellType = ""
				cellCol = nextCol
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						cellType = attr.Value
					case "r":
						if col, ok := columnIndex(attr.Value); ok {
							cellCol = col
						}
					}
				}
				nextCol = cellCol + 1
			case "v":
				inValue = true
				value.Reset()
			case "is":
				inInline = true
				value.Reset()
			}
		case xml.CharData:
			if inValue || inInline {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v":
				inValue = false
				text := value.String()
				if cellType == "s" {
					idx, err := strconv.Atoi(text)
					if err != nil || idx < 0 || idx >= len(shared) {
						text = ""
					} else {
						text = shared[idx]
					}
				}
				current = setCell(current, cellCol, text)
			case "is":
				inInline = false
				current = setCell(current, cellCol, value.String())
			case "row":
				rows = append(rows, current)
			}
		}
	}
	return rows, nil
}

func setCell(row []string, col int, value string) []string {
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = value
	return row
}

// columnIndex converts the letter part of a cell reference ("BC12") to
// a zero-based column index.
func columnIndex(ref string) (int, bool) {
	n := 0
	seen := false
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if c >= 'A' && c <= 'Z' {
			n = n*26 + int(c-'A') + 1
			seen = true
			continue
		}
		break
	}
	if !seen {
		return 0, false
	}
	return n - 1, true
}
