// Package report renders a committed invoice for the export layer. PDF
// typesetting lives outside this module; what the printable document
// needs from here is the spreadsheet rendering and the amount-in-words
// line required on Indian tax invoices.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

// inWords spells a non-negative integer using the Indian grouping
// (crore, lakh, thousand, hundred).
func inWords(n int64) string {
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	if n >= 10000000 {
		sb.WriteString(inWords(n/10000000) + " Crore ")
		n %= 10000000
	}
	if n >= 100000 {
		sb.WriteString(inWords(n/100000) + " Lakh ")
		n %= 100000
	}
	if n >= 1000 {
		sb.WriteString(inWords(n/1000) + " Thousand ")
		n %= 1000
	}
	if n >= 100 {
		sb.WriteString(inWords(n/100) + " Hundred ")
		n %= 100
	}
	if n > 0 {
		if sb.Len() > 0 {
			sb.WriteString("and ")
		}
		if n < 20 {
			sb.WriteString(ones[n])
		} else {
			sb.WriteString(tens[n/10])
			if n%10 > 0 {
				sb.WriteString("-" + ones[n%10])
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// AmountInWords renders a rupee amount the way it is printed on the
// invoice footer, e.g. "Rupees One Thousand Two Hundred and Thirty-Four
// and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Zero Rupees Only"
	}
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var sb strings.Builder
	sb.WriteString("Rupees ")
	sb.WriteString(inWords(rupees))
	if paise > 0 {
		sb.WriteString(" and " + inWords(paise) + " Paise")
	}
	sb.WriteString(" Only")
	return strings.Join(strings.Fields(sb.String()), " ")
}
