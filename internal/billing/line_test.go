package billing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"billforge/internal/billing"
	"billforge/internal/domain"
)

const delta = 1e-9

func TestComputeLine_DiscountBeforeTax(t *testing.T) {
	item := domain.LineItem{
		Quantity:        1,
		UnitPrice:       100,
		DiscountPercent: 10,
		SGSTRatePercent: 9,
		CGSTRatePercent: 9,
	}
	regime := billing.Resolve(domain.InvoiceContext{ItemKind: domain.ItemKindGoods})

	res := billing.ComputeLine(item, regime)

	// Tax applies to the discounted 90, never the pre-discount 100.
	assert.InDelta(t, 100, res.Gross, delta)
	assert.InDelta(t, 10, res.DiscountAmount, delta)
	assert.InDelta(t, 90, res.TaxableValue, delta)
	assert.InDelta(t, 16.2, res.TaxAmount, delta)
	assert.InDelta(t, 106.2, res.LineTotal, delta)
}

func TestComputeLine_RegimeExclusivity(t *testing.T) {
	item := domain.LineItem{
		Quantity:        2,
		UnitPrice:       250,
		DiscountPercent: 5,
		SGSTRatePercent: 9,
		CGSTRatePercent: 9,
		IGSTRatePercent: 18,
	}

	within := billing.ComputeLine(item, billing.Resolve(domain.InvoiceContext{IsInterState: false}))
	inter := billing.ComputeLine(item, billing.Resolve(domain.InvoiceContext{IsInterState: true}))

	// Within state only CGST+SGST apply; across states only IGST.
	assert.InDelta(t, within.CGSTAmount+within.SGSTAmount, within.TaxAmount, delta)
	assert.Zero(t, within.IGSTAmount)
	assert.InDelta(t, inter.IGSTAmount, inter.TaxAmount, delta)
	assert.Zero(t, inter.CGSTAmount)
	assert.Zero(t, inter.SGSTAmount)

	// With IGST equal to CGST+SGST the flag must not change the line total.
	assert.InDelta(t, within.LineTotal, inter.LineTotal, delta)
}

func TestComputeLine_UnequalHalves(t *testing.T) {
	// The UI keeps SGST==CGST by convention, but the calculator sums
	// whatever is supplied.
	item := domain.LineItem{
		Quantity:        1,
		UnitPrice:       100,
		SGSTRatePercent: 6,
		CGSTRatePercent: 12,
	}
	res := billing.ComputeLine(item, billing.Resolve(domain.InvoiceContext{}))

	assert.InDelta(t, 6, res.SGSTAmount, delta)
	assert.InDelta(t, 12, res.CGSTAmount, delta)
	assert.InDelta(t, 18, res.TaxAmount, delta)
}

func TestComputeLine_ServicesIgnoreQuantity(t *testing.T) {
	item := domain.LineItem{
		Quantity:        5,
		UnitPrice:       1200,
		IGSTRatePercent: 18,
	}
	regime := billing.Resolve(domain.InvoiceContext{
		IsInterState: true,
		ItemKind:     domain.ItemKindServices,
	})

	res := billing.ComputeLine(item, regime)

	// Services bill the unit price flat; quantity is not charged.
	assert.InDelta(t, 1200, res.Gross, delta)
	assert.InDelta(t, 1416, res.LineTotal, delta)
}

func TestComputeLine_ToleratesOutOfRangeInput(t *testing.T) {
	item := domain.LineItem{
		Quantity:        -2,
		UnitPrice:       100,
		DiscountPercent: 150,
		SGSTRatePercent: 9,
		CGSTRatePercent: 9,
	}
	res := billing.ComputeLine(item, billing.Resolve(domain.InvoiceContext{}))

	// Arithmetic proceeds; nothing is clamped or rejected.
	assert.InDelta(t, -200, res.Gross, delta)
	assert.InDelta(t, -300, res.DiscountAmount, delta)
	assert.InDelta(t, 100, res.TaxableValue, delta)
}

func TestComputeLine_NaNPropagates(t *testing.T) {
	item := domain.LineItem{Quantity: 1, UnitPrice: math.NaN()}
	res := billing.ComputeLine(item, billing.Resolve(domain.InvoiceContext{}))

	assert.True(t, math.IsNaN(res.LineTotal))
}
