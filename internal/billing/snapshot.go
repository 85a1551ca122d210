package billing

import "billforge/internal/domain"

// BuildSnapshot materializes the export contract for an invoice: every
// numeric field resolved, the shipping party derived from billing when
// "same as billing" is set, and the grand total rendered in words. Export
// collaborators (CSV, XLSX, upload, email) consume only this value.
func BuildSnapshot(inv *domain.Invoice) domain.InvoiceSnapshot {
	regime := Resolve(inv.Context)
	totals := ComputeTotals(inv.Items, inv.Context)

	lines := make([]domain.SnapshotLine, 0, len(inv.Items))
	for i := range inv.Items {
		item := inv.Items[i]
		res := ComputeLine(item, regime)
		lines = append(lines, domain.SnapshotLine{
			Description:        item.Description,
			ClassificationCode: item.ClassificationCode,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercent:    item.DiscountPercent,
			SGSTRatePercent:    item.SGSTRatePercent,
			CGSTRatePercent:    item.CGSTRatePercent,
			IGSTRatePercent:    item.IGSTRatePercent,
			LineTotal:          res.LineTotal,
		})
	}

	return domain.InvoiceSnapshot{
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            inv.InvoiceDate,
		DueDate:         inv.DueDate,
		BillTo:          inv.BillTo,
		ShipTo:          inv.EffectiveShipTo(),
		Subtotal:        totals.Subtotal,
		TotalDiscount:   totals.TotalDiscount,
		TotalTax:        totals.TotalTax,
		CGST:            totals.CGST,
		SGST:            totals.SGST,
		IGST:            totals.IGST,
		DeliveryCharge:  totals.DeliveryCharge,
		GrandTotal:      totals.GrandTotal,
		AmountInWords:   AmountInWords(totals.GrandTotal),
		CustomerType:    inv.Context.CustomerType,
		TransactionType: regime.TransactionType(),
		ShowTaxTable:    regime.ShowTaxBreakdown,
		LineItems:       lines,
	}
}
