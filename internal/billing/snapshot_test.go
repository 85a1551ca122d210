package billing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billforge/internal/billing"
	"billforge/internal/domain"
)

func testInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-042",
		InvoiceDate:   "2025-04-01",
		DueDate:       "2025-04-30",
		BillTo: domain.Party{
			Name:      "Acme Traders",
			Address:   "12 MG Road, Bengaluru",
			Phone:     "+91 80 1234 5678",
			Email:     "accounts@acmetraders.example",
			GSTNumber: "29ABCDE1234F1Z5",
		},
		SameAsBilling: true,
		Context: domain.InvoiceContext{
			CustomerType:   domain.CustomerB2B,
			ItemKind:       domain.ItemKindGoods,
			DeliveryCharge: 50,
		},
		Items: []domain.LineItem{
			{ID: uuid.New(), Description: "Bearing assembly", ClassificationCode: "8482", Quantity: 2, UnitPrice: 500, DiscountPercent: 10, SGSTRatePercent: 9, CGSTRatePercent: 9},
		},
	}
}

func TestBuildSnapshot_ResolvesAllNumerics(t *testing.T) {
	snap := billing.BuildSnapshot(testInvoice())

	assert.Equal(t, "INV-042", snap.InvoiceNumber)
	assert.Equal(t, "within-state", snap.TransactionType)
	assert.True(t, snap.ShowTaxTable)

	require.Len(t, snap.LineItems, 1)
	assert.InDelta(t, 1062, snap.LineItems[0].LineTotal, delta)

	// 1000 - 100 + 162 + 50.
	assert.InDelta(t, 1112, snap.GrandTotal, delta)
	assert.Equal(t, "One Thousand One Hundred and Twelve Rupees Only", snap.AmountInWords)
}

func TestBuildSnapshot_ShipToDerivedFromBilling(t *testing.T) {
	inv := testInvoice()
	snap := billing.BuildSnapshot(inv)

	assert.Equal(t, inv.BillTo.Name, snap.ShipTo.Name)
	assert.Equal(t, inv.BillTo.Address, snap.ShipTo.Address)
	assert.Empty(t, snap.ShipTo.GSTNumber)

	inv.SameAsBilling = false
	inv.ShipTo = domain.Party{Name: "Acme Warehouse", Address: "Plot 7, Hosur"}
	snap = billing.BuildSnapshot(inv)
	assert.Equal(t, "Acme Warehouse", snap.ShipTo.Name)
}

func TestBuildSnapshot_D2CSuppressesTaxTableOnly(t *testing.T) {
	inv := testInvoice()
	b2b := billing.BuildSnapshot(inv)

	inv.Context.CustomerType = domain.CustomerD2C
	d2c := billing.BuildSnapshot(inv)

	assert.False(t, d2c.ShowTaxTable)
	assert.Equal(t, b2b.GrandTotal, d2c.GrandTotal)
	assert.Equal(t, b2b.TotalTax, d2c.TotalTax)
}
