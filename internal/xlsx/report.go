package xlsx

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"placardgen/internal/mapping"
	"placardgen/pkg/placard"
)

// Report is the validated contents of one open order report: the rows
// that survived validation, bucketed by shipment, plus counters for
// everything that was dropped.
type Report struct {
	rows      map[string][]placard.Row
	shipments []string // first-appearance order

	TotalRows            int
	SkippedEmptyShipment int
	SkippedInvalidRows   int
}

// Shipments returns the distinct shipment numbers in order of first
// appearance in the report.
func (r *Report) Shipments() []string {
	return r.shipments
}

// Rows returns the validated rows of one shipment, nil if unknown.
func (r *Report) Rows(shipment string) []placard.Row {
	return r.rows[shipment]
}

// ValidRows returns the number of rows that passed validation.
func (r *Report) ValidRows() int {
	return r.TotalRows - r.SkippedEmptyShipment - r.SkippedInvalidRows
}

// FindReportFile locates the report workbook in dir by its file name
// prefix. With several matches the lexicographically first one wins,
// which is the oldest export under the date-suffixed naming scheme.
func FindReportFile(dir, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.xlsx"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no report file starting with %q found in %s", prefix, dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// ReadReportFile loads and validates a report workbook from disk.
func ReadReportFile(path string, profile *mapping.Profile) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	report, err := ReadReport(content, profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// ReadReport parses and validates a report workbook held in memory.
// The first sheet row must carry the column headings named by the
// profile; later rows are validated one by one and dropped (counted,
// not fatal) when a required field is malformed.
func ReadReport(content []byte, profile *mapping.Profile) (*Report, error) {
	cells, err := sheetCells(content)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("report worksheet is empty")
	}

	columns, err := resolveColumns(cells[0], profile)
	if err != nil {
		return nil, err
	}

	report := &Report{rows: make(map[string][]placard.Row)}
	for _, raw := range cells[1:] {
		report.TotalRows++

		shipment := normalizeNumber(cellAt(raw, columns.shipment))
		if shipment == "" {
			report.SkippedEmptyShipment++
			continue
		}
		row, ok := convertRow(raw, columns, profile.Validation)
		if !ok || !validShipmentNumber(shipment, profile.Validation.ShipmentNumberLength) {
			report.SkippedInvalidRows++
			continue
		}
		row.ShipmentNumber = shipment

		if _, seen := report.rows[shipment]; !seen {
			report.shipments = append(report.shipments, shipment)
		}
		report.rows[shipment] = append(report.rows[shipment], row)
	}

	return report, nil
}

type columnSet struct {
	shipment, order, labelType, orderType, paymentTerm int
	startShip, vas, shipTo, purchaseOrder, quantity    int
}

func resolveColumns(header []string, profile *mapping.Profile) (columnSet, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols := columnSet{
		shipment:      lookup(profile.Columns.Shipment),
		order:         lookup(profile.Columns.Order),
		labelType:     lookup(profile.Columns.LabelType),
		orderType:     lookup(profile.Columns.OrderType),
		paymentTerm:   lookup(profile.Columns.PaymentTerm),
		startShip:     lookup(profile.Columns.StartShip),
		vas:           lookup(profile.Columns.VAS),
		shipTo:        lookup(profile.Columns.ShipTo),
		purchaseOrder: lookup(profile.Columns.PurchaseOrder),
		quantity:      lookup(profile.Columns.Quantity),
	}
	if len(missing) > 0 {
		return columnSet{}, fmt.Errorf("report is missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func convertRow(raw []string, cols columnSet, rules mapping.Validation) (placard.Row, bool) {
	order := normalizeNumber(cellAt(raw, cols.order))
	if !validOrderNumber(order, rules.OrderNumberMinDigits) {
		return placard.Row{}, false
	}

	qty, ok := parseQuantity(cellAt(raw, cols.quantity))
	if !ok || qty > rules.MaxQuantity {
		return placard.Row{}, false
	}

	return placard.Row{
		OrderNumber:   order,
		LabelType:     strings.TrimSpace(cellAt(raw, cols.labelType)),
		OrderType:     strings.TrimSpace(cellAt(raw, cols.orderType)),
		PaymentTerm:   strings.TrimSpace(cellAt(raw, cols.paymentTerm)),
		StartShip:     parseDate(cellAt(raw, cols.startShip)),
		VAS:           parseVAS(cellAt(raw, cols.vas)),
		ShipTo:        strings.TrimSpace(cellAt(raw, cols.shipTo)),
		PurchaseOrder: normalizeNumber(cellAt(raw, cols.purchaseOrder)),
		Quantity:      qty,
	}, true
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func validShipmentNumber(s string, length int) bool {
	return len(s) == length && allDigits(s)
}

func validOrderNumber(s string, minDigits int) bool {
	return len(s) >= minDigits && allDigits(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// normalizeNumber strips the float artifacts numeric identifier cells
// pick up in spreadsheets ("9010157586.0", scientific notation) while
// leaving genuine text untouched.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true // missing quantity counts as zero, as in the source report
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), true
}

func parseVAS(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "Y")
}

// excelEpoch is day zero of the 1900 date system (with its leap year
// bug folded in, which is why it is the 30th).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
}

// parseDate handles both serial date cells and the string formats the
// report has been seen to carry. An unparseable date comes back as the
// zero time, rendered as an empty field.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		days := int(serial)
		frac := serial - float64(days)
		return excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour)))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
