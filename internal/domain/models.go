package domain

import (
	"time"

	"github.com/google/uuid"
)

// Party represents a billing or shipping party on an invoice.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// LineItem is one billable entry on an invoice. The three GST rate fields
// are independent; which of them apply is decided by the invoice's tax
// regime, never by the line itself.
type LineItem struct {
	ID                 uuid.UUID `json:"id"`
	Description        string    `json:"description"`
	ClassificationCode string    `json:"classification_code"`
	Quantity           float64   `json:"quantity"`
	UnitPrice          float64   `json:"unit_price"`
	DiscountPercent    float64   `json:"discount_percent"`
	SGSTRatePercent    float64   `json:"sgst_rate_percent"`
	CGSTRatePercent    float64   `json:"cgst_rate_percent"`
	IGSTRatePercent    float64   `json:"igst_rate_percent"`
}

// InvoiceContext holds the invoice-level settings controlling how line
// items are interpreted.
type InvoiceContext struct {
	IsInterState   bool         `json:"is_inter_state"`
	CustomerType   CustomerType `json:"customer_type"`
	ItemKind       ItemKind     `json:"item_kind"`
	DeliveryCharge float64      `json:"delivery_charge"`
}

// Invoice is the editable bill: header, parties, context, and an ordered
// list of at least one line item.
type Invoice struct {
	ID            uuid.UUID      `json:"id"`
	InvoiceNumber string         `json:"invoice_number"`
	InvoiceDate   string         `json:"invoice_date"`
	DueDate       string         `json:"due_date"`
	BillTo        Party          `json:"bill_to"`
	ShipTo        Party          `json:"ship_to"`
	SameAsBilling bool           `json:"same_as_billing"`
	Context       InvoiceContext `json:"context"`
	Items         []LineItem     `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// EffectiveShipTo returns the shipping party, derived from the billing party
// when SameAsBilling is set. The shipping address is a view, never a copy.
func (inv *Invoice) EffectiveShipTo() Party {
	if inv.SameAsBilling {
		ship := inv.BillTo
		ship.GSTNumber = ""
		return ship
	}
	return inv.ShipTo
}

// NewDefaultLineItem creates a line item with regime-dependent default
// rates: half/half CGST+SGST within state, the full rate as IGST across
// states.
func NewDefaultLineItem(ctx InvoiceContext, gstRatePercent float64) LineItem {
	item := LineItem{
		ID:       uuid.New(),
		Quantity: 1,
	}
	if ctx.IsInterState {
		item.IGSTRatePercent = gstRatePercent
	} else {
		item.SGSTRatePercent = gstRatePercent / 2
		item.CGSTRatePercent = gstRatePercent / 2
	}
	return item
}

// AddItem appends a line item to the invoice.
func (inv *Invoice) AddItem(item LineItem) {
	inv.Items = append(inv.Items, item)
}

// UpdateItem replaces the line item with the same ID. Returns false if no
// line with that ID exists.
func (inv *Invoice) UpdateItem(item LineItem) bool {
	for i := range inv.Items {
		if inv.Items[i].ID == item.ID {
			inv.Items[i] = item
			return true
		}
	}
	return false
}

// RemoveItem removes the line item with the given ID. An invoice always
// retains at least one line: removing the last remaining line is a no-op,
// not an error. Returns true if a line was removed.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) bool {
	if len(inv.Items) <= 1 {
		return false
	}
	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

// InvoiceTotals holds the derived aggregate figures. Totals are never
// stored; they are recomputed from the current items and context on every
// read.
type InvoiceTotals struct {
	Subtotal       float64 `json:"subtotal"`
	TotalDiscount  float64 `json:"total_discount"`
	TotalTax       float64 `json:"total_tax"`
	CGST           float64 `json:"cgst"`
	SGST           float64 `json:"sgst"`
	IGST           float64 `json:"igst"`
	DeliveryCharge float64 `json:"delivery_charge"`
	GrandTotal     float64 `json:"grand_total"`
}

// SnapshotLine is one fully resolved line in an InvoiceSnapshot.
type SnapshotLine struct {
	Description        string  `json:"description"`
	ClassificationCode string  `json:"classification_code"`
	Quantity           float64 `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	DiscountPercent    float64 `json:"discount_percent"`
	SGSTRatePercent    float64 `json:"sgst_rate_percent"`
	CGSTRatePercent    float64 `json:"cgst_rate_percent"`
	IGSTRatePercent    float64 `json:"igst_rate_percent"`
	LineTotal          float64 `json:"line_total"`
}

// InvoiceSnapshot is the one-shot, fully materialized value handed to
// export and print collaborators. Every numeric field is resolved at the
// moment the snapshot is produced; presentation formatting (currency
// symbols, 2-decimal rounding, locale dates) is the consumer's concern.
type InvoiceSnapshot struct {
	InvoiceNumber   string         `json:"invoice_number"`
	Date            string         `json:"date"`
	DueDate         string         `json:"due_date"`
	BillTo          Party          `json:"bill_to"`
	ShipTo          Party          `json:"ship_to"`
	Subtotal        float64        `json:"subtotal"`
	TotalDiscount   float64        `json:"total_discount"`
	TotalTax        float64        `json:"total_tax"`
	CGST            float64        `json:"cgst"`
	SGST            float64        `json:"sgst"`
	IGST            float64        `json:"igst"`
	DeliveryCharge  float64        `json:"delivery_charge"`
	GrandTotal      float64        `json:"grand_total"`
	AmountInWords   string         `json:"amount_in_words"`
	CustomerType    CustomerType   `json:"customer_type"`
	TransactionType string         `json:"transaction_type"`
	ShowTaxTable    bool           `json:"show_tax_table"`
	LineItems       []SnapshotLine `json:"line_items"`
}
