package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"billforge/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (26 columns). Each data row is one line
// item with the invoice-level figures repeated, so the export stays a flat
// grid that pivots cleanly.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"Bill To",
	"Bill To GSTIN",
	"Ship To",
	"Transaction Type",
	"Customer Type",
	"Description",
	"HSN/SAC",
	"Quantity",
	"Unit Price",
	"Discount %",
	"SGST %",
	"CGST %",
	"IGST %",
	"Line Total",
	"Subtotal",
	"Total Discount",
	"Total Tax",
	"CGST",
	"SGST",
	"IGST",
	"Delivery Charge",
	"Grand Total",
	"Amount In Words",
}

// Writer wraps csv.Writer for exporting invoice snapshots as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 26-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSnapshot converts a snapshot to CSV rows, one per line item, and
// writes them.
func (w *Writer) WriteSnapshot(snap *domain.InvoiceSnapshot) error {
	for i := range snap.LineItems {
		row := lineToRow(snap, &snap.LineItems[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func lineToRow(snap *domain.InvoiceSnapshot, line *domain.SnapshotLine) []string {
	row := make([]string, len(columns))

	row[0] = snap.InvoiceNumber
	row[1] = snap.Date
	row[2] = snap.DueDate
	row[3] = snap.BillTo.Name
	row[4] = snap.BillTo.GSTNumber
	row[5] = snap.ShipTo.Name
	row[6] = snap.TransactionType
	row[7] = string(snap.CustomerType)
	row[8] = line.Description
	row[9] = line.ClassificationCode
	row[10] = formatQuantity(line.Quantity)
	row[11] = formatMoney(line.UnitPrice)
	row[12] = formatMoney(line.DiscountPercent)
	row[13] = formatMoney(line.SGSTRatePercent)
	row[14] = formatMoney(line.CGSTRatePercent)
	row[15] = formatMoney(line.IGSTRatePercent)
	row[16] = formatMoney(line.LineTotal)
	row[17] = formatMoney(snap.Subtotal)
	row[18] = formatMoney(snap.TotalDiscount)
	row[19] = formatMoney(snap.TotalTax)
	row[20] = formatMoney(snap.CGST)
	row[21] = formatMoney(snap.SGST)
	row[22] = formatMoney(snap.IGST)
	row[23] = formatMoney(snap.DeliveryCharge)
	row[24] = formatMoney(snap.GrandTotal)
	row[25] = snap.AmountInWords

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an invoice number for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_invoice_number}_{YYYY-MM-DD}.{ext}
func BuildFilename(invoiceNumber, ext string) string {
	sanitized := SanitizeFilename(invoiceNumber)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
