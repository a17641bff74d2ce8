package placard

import (
	"fmt"
	"strings"
	"time"
)

// Canonical placeholder tokens recognized in templates.
const (
	TokenShipTo      = "{{Ship To}}"
	TokenShipment    = "{{Shipment Nbr}}"
	TokenPO          = "{{PO}}"
	TokenOrderNumber = "{{DO #}}"
	TokenVAS         = "{{VAS}}"
	TokenQuantity    = "{{Original Qty}}"
	TokenLabelType   = "{{Label Type}}"
	TokenOrderType   = "{{Order Type}}"
	TokenPaymentTerm = "{{Pmt Term}}"
	TokenStartShip   = "{{Start Ship}}"
)

// Row is one validated record of the open order report. Fields arrive
// as already-validated scalars; the core does no validation of its own
// on their contents.
type Row struct {
	ShipmentNumber string
	OrderNumber    string // DO number, the secondary (grouping) key
	LabelType      string
	OrderType      string
	PaymentTerm    string
	StartShip      time.Time
	VAS            bool
	ShipTo         string
	PurchaseOrder  string
	Quantity       int
}

// Group is all rows sharing one order number, aggregated into the data
// for a single output page: first-row scalars, summed quantity, and a
// deduplicated purchase-order list in order of first occurrence.
type Group struct {
	Key            string
	ShipTo         string
	PurchaseOrders []string
	Quantity       int
	First          Row
}

// GroupRows partitions rows by order number. Group order is the order
// of first appearance of each distinct key in the input sequence, which
// fixes the page order of the output; it is stable, not sorted. Rows
// with empty purchase orders contribute quantity but no list entry.
func GroupRows(rows []Row) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, row := range rows {
		i, seen := index[row.OrderNumber]
		if !seen {
			i = len(groups)
			index[row.OrderNumber] = i
			groups = append(groups, Group{Key: row.OrderNumber, ShipTo: row.ShipTo, First: row})
		}
		g := &groups[i]
		g.Quantity += row.Quantity
		po := strings.TrimSpace(row.PurchaseOrder)
		if po != "" && !containsString(g.PurchaseOrders, po) {
			g.PurchaseOrders = append(g.PurchaseOrders, po)
		}
	}

	return groups
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Replacements builds the full replacement map for one page. Shipment
// level fields come from shipment (the first valid row of the shipment);
// page level fields come from the group. All display formatting happens
// here, not in the substitution engine.
func (g Group) Replacements(shipment Row) ReplacementMap {
	return ReplacementMap{
		TokenShipTo:      g.ShipTo,
		TokenShipment:    shipment.ShipmentNumber,
		TokenPO:          strings.Join(g.PurchaseOrders, "\n"),
		TokenOrderNumber: PadOrderNumber(g.Key),
		TokenVAS:         VASLabel(shipment.VAS),
		TokenQuantity:    fmt.Sprintf("%d Units", g.Quantity),
		TokenLabelType:   shipment.LabelType,
		TokenOrderType:   shipment.OrderType,
		TokenPaymentTerm: shipment.PaymentTerm,
		TokenStartShip:   FormatShipDate(shipment.StartShip),
	}
}

// PadOrderNumber left-pads an all-digit order number with zeros to ten
// digits. Anything non-numeric or already longer is returned unchanged.
func PadOrderNumber(do string) string {
	do = strings.TrimSpace(do)
	if len(do) == 0 || len(do) >= 10 {
		return do
	}
	for i := 0; i < len(do); i++ {
		if do[i] < '0' || do[i] > '9' {
			return do
		}
	}
	return strings.Repeat("0", 10-len(do)) + do
}

// VASLabel renders the value-added-service flag for display.
func VASLabel(vas bool) string {
	if vas {
		return "VAS"
	}
	return "NOT VAS"
}

// FormatShipDate renders a ship date as MM/DD/YYYY, empty for the zero
// time (missing date in the source data).
func FormatShipDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}
