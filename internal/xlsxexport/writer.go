// Package xlsxexport renders a fully resolved invoice snapshot into an Excel
// workbook suitable for printing or sharing with a customer.
package xlsxexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"billforge/internal/domain"
)

const sheetName = "Invoice"

// Write renders the snapshot into a single-sheet workbook and returns the
// serialized bytes.
func Write(snap *domain.InvoiceSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	row := 1
	setRow := func(cells ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return err
		}
		row++
		return nil
	}

	header := [][]interface{}{
		{"Tax Invoice"},
		{"Invoice Number", snap.InvoiceNumber},
		{"Invoice Date", snap.Date},
		{"Due Date", snap.DueDate},
		{"Transaction Type", snap.TransactionType},
		{"Customer Type", string(snap.CustomerType)},
		{},
		{"Bill To", snap.BillTo.Name},
		{"", snap.BillTo.Address},
		{"GSTIN", snap.BillTo.GSTNumber},
		{"Ship To", snap.ShipTo.Name},
		{"", snap.ShipTo.Address},
		{},
	}
	for _, cells := range header {
		if err := setRow(cells...); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	lineHeader := []interface{}{"#", "Description", "HSN/SAC", "Qty", "Unit Price", "Discount %"}
	if snap.ShowTaxTable {
		lineHeader = append(lineHeader, "SGST %", "CGST %", "IGST %")
	}
	lineHeader = append(lineHeader, "Line Total")
	if err := setRow(lineHeader...); err != nil {
		return nil, fmt.Errorf("writing line header: %w", err)
	}

	for i, line := range snap.LineItems {
		cells := []interface{}{i + 1, line.Description, line.ClassificationCode, line.Quantity, line.UnitPrice, line.DiscountPercent}
		if snap.ShowTaxTable {
			cells = append(cells, line.SGSTRatePercent, line.CGSTRatePercent, line.IGSTRatePercent)
		}
		cells = append(cells, line.LineTotal)
		if err := setRow(cells...); err != nil {
			return nil, fmt.Errorf("writing line %d: %w", i+1, err)
		}
	}

	totals := [][]interface{}{
		{},
		{"Subtotal", snap.Subtotal},
		{"Total Discount", snap.TotalDiscount},
	}
	if snap.ShowTaxTable {
		if snap.IGST != 0 {
			totals = append(totals, []interface{}{"IGST", snap.IGST})
		} else {
			totals = append(totals,
				[]interface{}{"SGST", snap.SGST},
				[]interface{}{"CGST", snap.CGST})
		}
	}
	totals = append(totals,
		[]interface{}{"Total Tax", snap.TotalTax},
		[]interface{}{"Delivery Charge", snap.DeliveryCharge},
		[]interface{}{"Grand Total", snap.GrandTotal},
		[]interface{}{},
		[]interface{}{"Amount In Words", snap.AmountInWords},
	)
	for _, cells := range totals {
		if err := setRow(cells...); err != nil {
			return nil, fmt.Errorf("writing totals: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
