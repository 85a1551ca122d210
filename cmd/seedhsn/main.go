// Command seedhsn converts a GST HSN/SAC rate workbook into a SQL seed file
// for the hsn_codes lookup table. Goods come from the first sheet, services
// from the SAC_Master sheet.
// Usage: go run ./cmd/seedhsn <workbook.xlsx>
// Output: db/seeds/hsn_codes.sql
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type rateEntry struct {
	code        string
	kind        string // goods or services
	description string
	gstRate     float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedhsn <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/hsn_codes.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)
	var entries []rateEntry

	hsnEntries, err := parseHSNSheet(f, seen)
	if err != nil {
		return fmt.Errorf("parse HSN sheet: %w", err)
	}
	entries = append(entries, hsnEntries...)
	log.Printf("HSN sheet: %d entries", len(hsnEntries))

	sacEntries, err := parseSACSheet(f, seen)
	if err != nil {
		return fmt.Errorf("parse SAC sheet: %w", err)
	}
	entries = append(entries, sacEntries...)
	log.Printf("SAC sheet: %d entries", len(sacEntries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- HSN/SAC rate seed data generated from %s.\n-- %d entries in batches of %d.\nBEGIN;\n\n",
		xlsxPath, len(entries), batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d total entries in %s", len(entries), outPath)
	return nil
}

// parseHSNSheet reads the goods sheet (index 0).
// Columns: F(5)=4-digit, H(7)=4-digit desc, I(8)=6-digit, J(9)=6-digit desc,
// K(10)=8-digit, M(12)=8-digit desc, N(13)=GST rate (percentage formatted).
// Data starts at row index 5.
func parseHSNSheet(f *excelize.File, seen map[string]bool) ([]rateEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var entries []rateEntry
	for i := 5; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 14 {
			continue
		}

		gstRateStr := strings.TrimSpace(cellVal(row, 13))
		if gstRateStr == "" {
			continue
		}

		gstRateStr = strings.TrimSuffix(gstRateStr, "%")
		var gstRatePct float64
		if _, serr := fmt.Sscanf(gstRateStr, "%f", &gstRatePct); serr != nil {
			continue
		}

		if code := strings.TrimSpace(cellVal(row, 10)); code != "" && isNumeric(code) {
			entries = addEntry(entries, seen, code, "goods", strings.TrimSpace(cellVal(row, 12)), gstRatePct)
		}
		if code := strings.TrimSpace(cellVal(row, 8)); code != "" && isNumeric(code) {
			entries = addEntry(entries, seen, code, "goods", strings.TrimSpace(cellVal(row, 9)), gstRatePct)
		}
		if code := strings.TrimSpace(cellVal(row, 5)); code != "" && isNumeric(code) {
			entries = addEntry(entries, seen, code, "goods", strings.TrimSpace(cellVal(row, 7)), gstRatePct)
		}
	}
	return entries, nil
}

// parseSACSheet reads the SAC_Master sheet (services).
// Columns: A(0)=4-digit SAC, B(1)=4-digit desc, C(2)=6-digit SAC, D(3)=6-digit desc,
// E(4)=GST rate (free text like "18%", "Exempt", "12%-18%").
// Data starts at row index 3.
func parseSACSheet(f *excelize.File, seen map[string]bool) ([]rateEntry, error) {
	rows, err := f.GetRows("SAC_Master")
	if err != nil {
		return nil, err
	}

	var entries []rateEntry
	for i := 3; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		rates := parseSACRate(strings.TrimSpace(cellVal(row, 4)))
		if len(rates) == 0 {
			continue
		}

		code6 := strings.TrimSpace(cellVal(row, 2))
		desc6 := strings.TrimSpace(cellVal(row, 3))
		code4 := strings.TrimSpace(cellVal(row, 0))
		desc4 := strings.TrimSpace(cellVal(row, 1))

		for _, rate := range rates {
			if code6 != "" && isNumeric(code6) {
				entries = addEntry(entries, seen, code6, "services", desc6, rate)
			}
			if code4 != "" && isNumeric(code4) {
				entries = addEntry(entries, seen, code4, "services", desc4, rate)
			}
		}
	}
	return entries, nil
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// parseSACRate extracts GST rate(s) from free-text SAC rate strings. "Exempt"
// and "Nil" map to 0; compound strings like "12%-18%" yield both rates.
func parseSACRate(s string) []float64 {
	if s == "" {
		return nil
	}

	lower := strings.ToLower(s)
	if lower == "exempt" || lower == "nil" {
		return []float64{0}
	}

	matches := ratePattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[float64]bool)
	var rates []float64
	for _, m := range matches {
		var rate float64
		if _, err := fmt.Sscanf(m[1], "%f", &rate); err == nil && !seen[rate] {
			seen[rate] = true
			rates = append(rates, rate)
		}
	}
	return rates
}

func addEntry(entries []rateEntry, seen map[string]bool, code, kind, description string, gstRate float64) []rateEntry {
	key := fmt.Sprintf("%s|%s|%.2f", code, kind, gstRate)
	if seen[key] {
		return entries
	}
	seen[key] = true
	return append(entries, rateEntry{code: code, kind: kind, description: description, gstRate: gstRate})
}

func writeBatch(out *os.File, batch []rateEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO hsn_codes (code, kind, description, gst_rate) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %.2f)",
			escapeSQL(e.code), e.kind, escapeSQL(e.description), e.gstRate)
	}

	b.WriteString("\nON CONFLICT (code, kind, gst_rate) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
