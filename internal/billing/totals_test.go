package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billforge/internal/billing"
	"billforge/internal/domain"
)

func testItems() []domain.LineItem {
	return []domain.LineItem{
		{Quantity: 2, UnitPrice: 500, DiscountPercent: 10, SGSTRatePercent: 9, CGSTRatePercent: 9, IGSTRatePercent: 18},
		{Quantity: 1, UnitPrice: 250, SGSTRatePercent: 2.5, CGSTRatePercent: 2.5, IGSTRatePercent: 5},
		{Quantity: 4, UnitPrice: 75, DiscountPercent: 25, SGSTRatePercent: 6, CGSTRatePercent: 6, IGSTRatePercent: 12},
	}
}

func TestComputeTotals_WithinState(t *testing.T) {
	ctx := domain.InvoiceContext{DeliveryCharge: 50}
	totals := billing.ComputeTotals(testItems(), ctx)

	// Gross: 1000 + 250 + 300 = 1550; discounts: 100 + 0 + 75 = 175.
	assert.InDelta(t, 1550, totals.Subtotal, delta)
	assert.InDelta(t, 175, totals.TotalDiscount, delta)

	// Tax on discounted values: 900*18% + 250*5% + 225*12% = 201.5.
	assert.InDelta(t, 201.5, totals.TotalTax, delta)
	assert.InDelta(t, totals.CGST+totals.SGST, totals.TotalTax, delta)
	assert.Zero(t, totals.IGST)

	assert.InDelta(t, 50, totals.DeliveryCharge, delta)
	assert.InDelta(t, 1550-175+201.5+50, totals.GrandTotal, delta)
}

func TestComputeTotals_InterStateUsesIGSTOnly(t *testing.T) {
	ctx := domain.InvoiceContext{IsInterState: true}
	totals := billing.ComputeTotals(testItems(), ctx)

	assert.InDelta(t, totals.IGST, totals.TotalTax, delta)
	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)
}

func TestComputeTotals_ConsistentWithLineTotals(t *testing.T) {
	ctx := domain.InvoiceContext{DeliveryCharge: 120}
	regime := billing.Resolve(ctx)
	items := testItems()

	var sum float64
	for _, item := range items {
		sum += billing.ComputeLine(item, regime).LineTotal
	}

	totals := billing.ComputeTotals(items, ctx)
	assert.InDelta(t, sum+ctx.DeliveryCharge, totals.GrandTotal, delta)
}

func TestComputeTotals_CustomerTypeNeverChangesArithmetic(t *testing.T) {
	b2b := domain.InvoiceContext{CustomerType: domain.CustomerB2B, DeliveryCharge: 30}
	d2c := b2b
	d2c.CustomerType = domain.CustomerD2C

	assert.Equal(t, billing.ComputeTotals(testItems(), b2b), billing.ComputeTotals(testItems(), d2c))
}

func TestComputeTotals_DeliveryChargeNeverTaxed(t *testing.T) {
	items := []domain.LineItem{{Quantity: 1, UnitPrice: 100, SGSTRatePercent: 9, CGSTRatePercent: 9}}

	without := billing.ComputeTotals(items, domain.InvoiceContext{})
	with := billing.ComputeTotals(items, domain.InvoiceContext{DeliveryCharge: 40})

	assert.InDelta(t, without.TotalTax, with.TotalTax, delta)
	assert.InDelta(t, without.GrandTotal+40, with.GrandTotal, delta)
}
