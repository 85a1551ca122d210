package billing

import "billforge/internal/domain"

// LineResult holds one line's derived monetary figures. No currency
// rounding is applied here: rounding to two decimals is a presentation
// concern, applied only when rendering, so that aggregation never compounds
// rounding error across lines.
type LineResult struct {
	Gross          float64
	DiscountAmount float64
	TaxableValue   float64
	CGSTAmount     float64
	SGSTAmount     float64
	IGSTAmount     float64
	TaxAmount      float64
	LineTotal      float64
}

// ComputeLine derives a single line's taxable value and tax split under the
// given regime. Discount always applies to the line's gross before tax; tax
// is computed on the discounted (taxable) value only.
//
// Inputs are not validated: negative or out-of-range values compute
// arithmetically and NaN propagates. The invoice view must never crash on a
// half-typed field.
func ComputeLine(item domain.LineItem, regime Regime) LineResult {
	gross := item.UnitPrice
	if regime.ChargesQuantity {
		gross = item.Quantity * item.UnitPrice
	}

	discount := gross * item.DiscountPercent / 100
	taxable := gross - discount

	res := LineResult{
		Gross:          gross,
		DiscountAmount: discount,
		TaxableValue:   taxable,
	}

	if regime.InterState {
		res.IGSTAmount = taxable * item.IGSTRatePercent / 100
		res.TaxAmount = res.IGSTAmount
	} else {
		// The UI keeps SGST and CGST equal by convention; the calculator
		// sums whatever was supplied.
		res.SGSTAmount = taxable * item.SGSTRatePercent / 100
		res.CGSTAmount = taxable * item.CGSTRatePercent / 100
		res.TaxAmount = res.SGSTAmount + res.CGSTAmount
	}

	res.LineTotal = taxable + res.TaxAmount
	return res
}
