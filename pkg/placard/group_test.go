package placard

import (
	"reflect"
	"testing"
	"time"
)

func TestGroupRowsFirstAppearanceOrder(t *testing.T) {
	rows := []Row{
		{OrderNumber: "B", Quantity: 1},
		{OrderNumber: "A", Quantity: 2},
		{OrderNumber: "B", Quantity: 3},
	}
	groups := GroupRows(rows)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != "B" || groups[1].Key != "A" {
		t.Errorf("group order = [%s, %s], want [B, A]", groups[0].Key, groups[1].Key)
	}
	if groups[0].Quantity != 4 || groups[1].Quantity != 2 {
		t.Errorf("quantities = %d, %d, want 4, 2", groups[0].Quantity, groups[1].Quantity)
	}
}

func TestGroupRowsAggregation(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		{OrderNumber: "12345678", ShipTo: "Acme Corp", PurchaseOrder: "4500111", Quantity: 10, StartShip: start},
		{OrderNumber: "12345678", ShipTo: "ignored later value", PurchaseOrder: "4500222", Quantity: 5},
		{OrderNumber: "12345678", PurchaseOrder: "4500111", Quantity: 7}, // duplicate PO
		{OrderNumber: "12345678", PurchaseOrder: "  ", Quantity: 3},      // blank PO still counts quantity
	}
	groups := GroupRows(rows)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Quantity != 25 {
		t.Errorf("Quantity = %d, want 25", g.Quantity)
	}
	if want := []string{"4500111", "4500222"}; !reflect.DeepEqual(g.PurchaseOrders, want) {
		t.Errorf("PurchaseOrders = %v, want %v", g.PurchaseOrders, want)
	}
	// Scalars come from the first row of the group.
	if g.ShipTo != "Acme Corp" || g.First.StartShip != start {
		t.Errorf("first-row scalars not kept: %+v", g)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	if groups := GroupRows(nil); len(groups) != 0 {
		t.Errorf("GroupRows(nil) = %v", groups)
	}
}

func TestGroupReplacements(t *testing.T) {
	shipment := Row{
		ShipmentNumber: "9010157586",
		LabelType:      "UCC128",
		OrderType:      "Bulk",
		PaymentTerm:    "NET30",
		StartShip:      time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		VAS:            true,
	}
	g := Group{
		Key:            "12345678",
		ShipTo:         "Acme Corp",
		PurchaseOrders: []string{"4500111", "4500222"},
		Quantity:       42,
	}

	got := g.Replacements(shipment)
	want := ReplacementMap{
		TokenShipTo:      "Acme Corp",
		TokenShipment:    "9010157586",
		TokenPO:          "4500111\n4500222",
		TokenOrderNumber: "0012345678",
		TokenVAS:         "VAS",
		TokenQuantity:    "42 Units",
		TokenLabelType:   "UCC128",
		TokenOrderType:   "Bulk",
		TokenPaymentTerm: "NET30",
		TokenStartShip:   "08/23/2026",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Replacements = %v, want %v", got, want)
	}
}

func TestPadOrderNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345678", "0012345678"},
		{"1", "0000000001"},
		{"1234567890", "1234567890"},
		{"12345678901", "12345678901"},
		{"DO-123", "DO-123"},
		{"", ""},
		{"  42  ", "0000000042"},
	}
	for _, tt := range tests {
		if got := PadOrderNumber(tt.in); got != tt.want {
			t.Errorf("PadOrderNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVASLabel(t *testing.T) {
	if VASLabel(true) != "VAS" || VASLabel(false) != "NOT VAS" {
		t.Errorf("VASLabel mapping wrong: %q, %q", VASLabel(true), VASLabel(false))
	}
}

func TestFormatShipDate(t *testing.T) {
	if got := FormatShipDate(time.Time{}); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	d := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatShipDate(d); got != "01/05/2026" {
		t.Errorf("FormatShipDate = %q, want 01/05/2026", got)
	}
}
