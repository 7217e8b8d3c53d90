// Package billing turns a cart of line items into a tax-correct invoice
// and commits it against stock as one atomic unit. A draft lives purely
// in memory: abandoning it has no persistence effect, and nothing is
// written until Commit succeeds.
package billing

import (
	"strings"
	"time"

	"github.com/gopidist/pharmabill/internal/models"
	"github.com/gopidist/pharmabill/internal/tax"
)

// draftLine pairs the operator-visible line with the product's own
// catalog rate, kept so a profile policy flip can re-resolve the
// effective rate later in the draft's life.
type draftLine struct {
	item        models.InvoiceLineItem
	productRate int
}

// Draft is a mutable invoice under construction. Every mutation re-runs
// the tax engine, so the draft is always fully computed; there is no
// separate finalize step. Not safe for concurrent use: one operator
// drafts one invoice at a time.
type Draft struct {
	InvoiceNo   string
	Date        time.Time
	InvoiceType models.InvoiceType
	GRNo        string
	VehicleNo   string
	Transport   string

	profile models.CompanyProfile
	party   *models.Party
	lines   []draftLine
}

// NewDraft opens a draft under the given seller profile. The invoice
// number is assigned once at draft-open time (see NextInvoiceNo) and is
// immutable after commit.
func NewDraft(profile models.CompanyProfile, typ models.InvoiceType, invoiceNo string) *Draft {
	return &Draft{
		InvoiceNo:   invoiceNo,
		Date:        time.Now(),
		InvoiceType: typ,
		profile:     profile,
	}
}

func (d *Draft) Party() *models.Party           { return d.party }
func (d *Draft) Profile() models.CompanyProfile { return d.profile }
func (d *Draft) Len() int                       { return len(d.lines) }

// sellerState and buyerState decide the inter/intra-state split. A
// buyer without a registration number is treated as same-state.
func (d *Draft) sellerState() string {
	return tax.StateCodeFromGSTIN(d.profile.GSTIN)
}

func (d *Draft) buyerState() string {
	if d.party == nil {
		return d.sellerState()
	}
	gstin := strings.TrimSpace(d.party.GSTIN)
	if gstin == "" {
		return d.sellerState()
	}
	return tax.StateCodeFromGSTIN(gstin)
}

// AddLine appends a snapshot of the product with quantity 1, free 0,
// discount 0. A product may appear at most once per invoice; repeat
// adds are rejected and quantities are changed on the existing line.
func (d *Draft) AddLine(p models.Product) error {
	for _, l := range d.lines {
		if l.item.ProductID == p.ID {
			return ErrDuplicateLine
		}
	}
	oldMRP := p.OldMRP
	if oldMRP.IsZero() {
		oldMRP = p.MRP
	}
	d.lines = append(d.lines, draftLine{
		item: models.InvoiceLineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Batch:     p.Batch,
			Expiry:    p.Expiry,
			HSN:       p.HSN,
			Quantity:  1,
			SaleRate:  p.SaleRate,
			MRP:       p.MRP,
			OldMRP:    oldMRP,
		},
		productRate: p.GSTRate,
	})
	d.recompute(len(d.lines) - 1)
	return nil
}

// UpdateLine lets the operator change one line's editable fields (qty,
// free qty, discount, rate, MRP, batch) and recomputes that line only.
// Derived fields and the effective tax rate are overwritten by the tax
// engine after the mutation, so they cannot drift from their inputs.
func (d *Draft) UpdateLine(index int, mutate func(*models.InvoiceLineItem)) error {
	if index < 0 || index >= len(d.lines) {
		return ErrLineIndex
	}
	mutate(&d.lines[index].item)
	d.recompute(index)
	return nil
}

// RemoveLine deletes a line without touching the remaining lines.
func (d *Draft) RemoveLine(index int) error {
	if index < 0 || index >= len(d.lines) {
		return ErrLineIndex
	}
	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	return nil
}

// SetParty selects (or clears) the buyer. The buyer's state code may
// flip every line between intra- and inter-state treatment, so all
// lines are recomputed.
func (d *Draft) SetParty(p *models.Party) {
	d.party = p
	d.recomputeAll()
}

// SetProfile re-applies the seller configuration, including the
// default-rate policy switch, to every line.
func (d *Draft) SetProfile(profile models.CompanyProfile) {
	d.profile = profile
	d.recomputeAll()
}

func (d *Draft) recomputeAll() {
	for i := range d.lines {
		d.recompute(i)
	}
}

func (d *Draft) recompute(i int) {
	l := &d.lines[i]
	l.item.GSTRate = tax.EffectiveRate(l.productRate, d.profile.UseDefaultGST, d.profile.DefaultGSTRate)
	b := tax.ComputeLine(tax.LineInput{
		SaleRate:        l.item.SaleRate,
		Quantity:        l.item.Quantity,
		FreeQuantity:    l.item.FreeQuantity,
		DiscountPercent: l.item.DiscountPercent,
		GSTRate:         l.item.GSTRate,
	}, d.sellerState(), d.buyerState())
	l.item.TaxableValue = b.TaxableValue
	l.item.CGSTAmount = b.CGST
	l.item.SGSTAmount = b.SGST
	l.item.IGSTAmount = b.IGST
	l.item.TotalAmount = b.TotalAmount
}

// Lines returns a copy of the computed line items in draft order.
func (d *Draft) Lines() []models.InvoiceLineItem {
	out := make([]models.InvoiceLineItem, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.item
	}
	return out
}

// Totals aggregates the draft, including the cash-rounding delta.
func (d *Draft) Totals() tax.Aggregate {
	bs := make([]tax.Breakdown, len(d.lines))
	for i, l := range d.lines {
		bs[i] = tax.Breakdown{
			TaxableValue: l.item.TaxableValue,
			CGST:         l.item.CGSTAmount,
			SGST:         l.item.SGSTAmount,
			IGST:         l.item.IGSTAmount,
			TotalAmount:  l.item.TotalAmount,
		}
	}
	return tax.Totals(bs)
}
