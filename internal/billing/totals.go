package billing

import "billforge/internal/domain"

// ComputeTotals folds per-line results into the invoice totals. The tax
// breakdown is always computed in full, regardless of customer type: D2C
// only suppresses the tax table's presentation, never the figures.
//
// The delivery charge is added once, after tax, and is itself never taxed.
func ComputeTotals(items []domain.LineItem, ctx domain.InvoiceContext) domain.InvoiceTotals {
	regime := Resolve(ctx)

	totals := domain.InvoiceTotals{DeliveryCharge: ctx.DeliveryCharge}
	for i := range items {
		res := ComputeLine(items[i], regime)
		totals.Subtotal += res.Gross
		totals.TotalDiscount += res.DiscountAmount
		totals.CGST += res.CGSTAmount
		totals.SGST += res.SGSTAmount
		totals.IGST += res.IGSTAmount
		totals.TotalTax += res.TaxAmount
	}

	totals.GrandTotal = totals.Subtotal - totals.TotalDiscount + totals.TotalTax + ctx.DeliveryCharge
	return totals
}
