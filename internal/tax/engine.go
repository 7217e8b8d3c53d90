// Package tax computes GST line and invoice allocations. Every function
// here is pure: the seller and buyer jurisdictions and the rate policy
// are explicit parameters, never ambient state, so recomputing with
// unchanged inputs always yields identical results.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultStateCode is assumed when a GSTIN is absent or too short. A
// missing buyer registration means same-state (intra-state) treatment.
const DefaultStateCode = "24"

var oneHundred = decimal.NewFromInt(100)

// StateCodeFromGSTIN extracts the two-character jurisdiction prefix of a
// GSTIN-like string, falling back to DefaultStateCode.
func StateCodeFromGSTIN(gstin string) string {
	s := strings.TrimSpace(gstin)
	if len(s) < 2 {
		return DefaultStateCode
	}
	return s[:2]
}

// LineInput is what the operator controls on a draft line. Free quantity
// is delivered but not charged, so it never enters the base amount.
type LineInput struct {
	SaleRate        decimal.Decimal
	Quantity        int
	FreeQuantity    int
	DiscountPercent decimal.Decimal
	GSTRate         int
}

// Breakdown is the derived money on a line. TaxableValue plus the three
// tax amounts always equals TotalAmount exactly.
type Breakdown struct {
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	TotalAmount  decimal.Decimal
}

// EffectiveRate resolves the rate a line is taxed at. When the profile
// forces a default rate, every line uses it regardless of the product's
// own slab; this is a global policy switch, not a per-line choice.
func EffectiveRate(productRate int, useDefault bool, defaultRate int) int {
	if useDefault {
		return defaultRate
	}
	return productRate
}

// ComputeLine allocates tax for one line. Intra-state splits the total
// tax equally between CGST and SGST; inter-state carries it all as IGST.
func ComputeLine(in LineInput, sellerStateCode, buyerStateCode string) Breakdown {
	qty := decimal.NewFromInt(int64(in.Quantity))
	baseAmount := in.SaleRate.Mul(qty)
	discountAmount := baseAmount.Mul(in.DiscountPercent).Div(oneHundred)
	taxableValue := baseAmount.Sub(discountAmount)

	rate := decimal.NewFromInt(int64(in.GSTRate))
	totalTax := taxableValue.Mul(rate).Div(oneHundred)

	out := Breakdown{TaxableValue: taxableValue}
	if sellerStateCode != buyerStateCode {
		out.IGST = totalTax
		out.CGST = decimal.Zero
		out.SGST = decimal.Zero
	} else {
		half := totalTax.Div(decimal.NewFromInt(2))
		out.CGST = half
		// Subtracting keeps CGST+SGST equal to the total tax even if the
		// halving ever rounds; for money-scale inputs both halves match.
		out.SGST = totalTax.Sub(half)
		out.IGST = decimal.Zero
	}
	out.TotalAmount = taxableValue.Add(totalTax)
	return out
}

// Aggregate sums line breakdowns into invoice totals. RoundOff is the
// cash-rounding delta to the nearest whole unit; it is stored on the
// invoice so printing reproduces it instead of recomputing.
type Aggregate struct {
	TotalTaxable decimal.Decimal
	TotalCGST    decimal.Decimal
	TotalSGST    decimal.Decimal
	TotalIGST    decimal.Decimal
	GrandTotal   decimal.Decimal
	RoundOff     decimal.Decimal
}

// Totals computes invoice aggregates from per-line breakdowns.
func Totals(lines []Breakdown) Aggregate {
	agg := Aggregate{
		TotalTaxable: decimal.Zero,
		TotalCGST:    decimal.Zero,
		TotalSGST:    decimal.Zero,
		TotalIGST:    decimal.Zero,
		GrandTotal:   decimal.Zero,
	}
	for _, l := range lines {
		agg.TotalTaxable = agg.TotalTaxable.Add(l.TaxableValue)
		agg.TotalCGST = agg.TotalCGST.Add(l.CGST)
		agg.TotalSGST = agg.TotalSGST.Add(l.SGST)
		agg.TotalIGST = agg.TotalIGST.Add(l.IGST)
		agg.GrandTotal = agg.GrandTotal.Add(l.TotalAmount)
	}
	agg.RoundOff = agg.GrandTotal.Round(0).Sub(agg.GrandTotal)
	return agg
}
