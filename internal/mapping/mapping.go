// Package mapping holds the field-mapping profile: which spreadsheet
// columns feed which placard fields, plus the row validation limits.
// Deployments whose reports use different column headings ship a YAML
// profile instead of patching the code.
package mapping

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Columns names the report columns for each placard field.
type Columns struct {
	Shipment      string `yaml:"shipment"`
	Order         string `yaml:"order"`
	LabelType     string `yaml:"label_type"`
	OrderType     string `yaml:"order_type"`
	PaymentTerm   string `yaml:"payment_term"`
	StartShip     string `yaml:"start_ship"`
	VAS           string `yaml:"vas"`
	ShipTo        string `yaml:"ship_to"`
	PurchaseOrder string `yaml:"purchase_order"`
	Quantity      string `yaml:"quantity"`
}

// Validation holds the row acceptance limits.
type Validation struct {
	// ShipmentNumberLength is the exact digit count of a valid shipment
	// number.
	ShipmentNumberLength int `yaml:"shipment_number_length"`
	// OrderNumberMinDigits is the minimum digit count of a valid DO
	// number.
	OrderNumberMinDigits int `yaml:"order_number_min_digits"`
	// MaxQuantity rejects rows with absurd quantities, usually a sign
	// of a shifted column.
	MaxQuantity int `yaml:"max_quantity"`
}

// Profile is the full mapping profile.
type Profile struct {
	// ReportPrefix is the file name prefix the report workbook is
	// looked up by inside the data folder.
	ReportPrefix string `yaml:"report_prefix"`
	// TemplateFile is the template file name inside the template folder.
	TemplateFile string     `yaml:"template_file"`
	Columns      Columns    `yaml:"columns"`
	Validation   Validation `yaml:"validation"`
}

// Default returns the profile matching the standard open order report.
func Default() *Profile {
	return &Profile{
		ReportPrefix: "WM-SPN-CUS105 Open Order Report",
		TemplateFile: "placard_template.docx",
		Columns: Columns{
			Shipment:      "Shipment Nbr",
			Order:         "DO #",
			LabelType:     "Label Type",
			OrderType:     "Order Type",
			PaymentTerm:   "Pmt Term",
			StartShip:     "Start Ship",
			VAS:           "VAS",
			ShipTo:        "Ship To",
			PurchaseOrder: "PO",
			Quantity:      "Original Qty",
		},
		Validation: Validation{
			ShipmentNumberLength: 10,
			OrderNumberMinDigits: 8,
			MaxQuantity:          1000000,
		},
	}
}

// Load reads a profile from a YAML file. Fields left out of the file
// keep their defaults; unknown fields are rejected to catch typos.
func Load(path string) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping profile: %w", err)
	}
	profile := Default()
	if err := yaml.UnmarshalWithOptions(content, profile, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse mapping profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping profile %s: %w", path, err)
	}
	return profile, nil
}

// Validate checks that the profile is complete enough to use.
func (p *Profile) Validate() error {
	required := map[string]string{
		"columns.shipment":       p.Columns.Shipment,
		"columns.order":          p.Columns.Order,
		"columns.label_type":     p.Columns.LabelType,
		"columns.order_type":     p.Columns.OrderType,
		"columns.payment_term":   p.Columns.PaymentTerm,
		"columns.start_ship":     p.Columns.StartShip,
		"columns.vas":            p.Columns.VAS,
		"columns.ship_to":        p.Columns.ShipTo,
		"columns.purchase_order": p.Columns.PurchaseOrder,
		"columns.quantity":       p.Columns.Quantity,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}
	if p.Validation.ShipmentNumberLength <= 0 {
		return fmt.Errorf("validation.shipment_number_length must be positive")
	}
	if p.Validation.OrderNumberMinDigits <= 0 {
		return fmt.Errorf("validation.order_number_min_digits must be positive")
	}
	if p.Validation.MaxQuantity <= 0 {
		return fmt.Errorf("validation.max_quantity must be positive")
	}
	return nil
}

// RequiredColumns lists every column heading the report must carry.
func (p *Profile) RequiredColumns() []string {
	return []string{
		p.Columns.Shipment,
		p.Columns.Order,
		p.Columns.LabelType,
		p.Columns.OrderType,
		p.Columns.PaymentTerm,
		p.Columns.StartShip,
		p.Columns.VAS,
		p.Columns.ShipTo,
		p.Columns.PurchaseOrder,
		p.Columns.Quantity,
	}
}
