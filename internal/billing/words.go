package billing

import (
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
}

var teens = []string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a non-negative amount as the Indian-English
// "amount in words" line: Indian grouping (crore/lakh/thousand/hundred) for
// the whole rupees, a two-decimal paise part, and a trailing "Only".
//
//	AmountInWords(0)       == "Zero Rupees Only"
//	AmountInWords(1000.50) == "One Thousand Rupees and Fifty Paise Only"
//
// NaN yields an empty string. The invoice view renders whatever it is
// given, so a half-edited field must produce blank text, not a panic.
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) {
		return ""
	}

	whole := int64(math.Floor(amount))
	paise := int64(math.Round((amount - math.Floor(amount)) * 100))
	if paise == 100 {
		whole++
		paise = 0
	}

	var b strings.Builder
	b.WriteString(integerWords(whole))
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(integerWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// integerWords renders n using the Indian grouping: crore (1e7), lakh
// (1e5), thousand, hundred, then the final two-digit remainder. Each
// non-zero group carries its scale word; the final sub-hundred remainder is
// prefixed with "and" only when a higher group already produced output.
func integerWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string

	if crore := n / 10000000; crore > 0 {
		parts = append(parts, integerWords(crore)+" Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, subHundred(lakh)+" Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, subHundred(thousand)+" Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, ones[hundred]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+subHundred(n))
		} else {
			parts = append(parts, subHundred(n))
		}
	}

	return strings.Join(parts, " ")
}

// subHundred renders 1..99 via the units/teens/tens tables.
func subHundred(n int64) string {
	switch {
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n%10 == 0:
		return tens[n/10]
	default:
		return tens[n/10] + " " + ones[n%10]
	}
}
