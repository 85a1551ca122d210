// Package billing is the pure computation core of the bill editor: tax
// regime resolution, per-line and aggregate GST arithmetic, snapshot
// assembly, and the Indian-English amount-in-words rendering. Every function
// here is a deterministic transformation over its inputs with no I/O and no
// shared state; recomputation is just re-invocation.
package billing

import "billforge/internal/domain"

// Regime captures which tax fields are active for an invoice and how its
// lines are interpreted. The intra-state vs inter-state branch lives here
// and in ComputeLine only; consumers must never re-derive it inline.
type Regime struct {
	// InterState selects IGST-only taxation. When false, CGST+SGST apply.
	// A single invoice is never mixed-regime.
	InterState bool
	// ShowTaxBreakdown controls presentation of the per-line tax table.
	// It never changes the arithmetic.
	ShowTaxBreakdown bool
	// ChargesQuantity is true for goods invoices. Services lines bill the
	// unit price flat, with quantity treated as 1.
	ChargesQuantity bool
	// ClassificationKind names the code scheme meaningful for the lines.
	ClassificationKind domain.ItemKind
}

// Resolve determines the effective tax regime for an invoice context.
func Resolve(ctx domain.InvoiceContext) Regime {
	return Regime{
		InterState:         ctx.IsInterState,
		ShowTaxBreakdown:   ctx.CustomerType != domain.CustomerD2C,
		ChargesQuantity:    ctx.ItemKind != domain.ItemKindServices,
		ClassificationKind: ctx.ItemKind,
	}
}

// TransactionType returns the wire value used in snapshots and exports.
func (r Regime) TransactionType() string {
	if r.InterState {
		return domain.TransactionInterState
	}
	return domain.TransactionWithinState
}
