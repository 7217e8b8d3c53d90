package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceType string

const (
	InvoiceWholesale InvoiceType = "WHOLESALE"
	InvoiceRetail    InvoiceType = "RETAIL"
)

// Invoice is the committed document. Created exactly once at commit and
// never mutated afterward; amendments are new invoices. Party fields are
// snapshots copied at commit time, not live references, so later catalog
// or party edits cannot alter historical tax filings.
type Invoice struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	InvoiceNo      string            `gorm:"size:40;not null;index" json:"invoice_no"`
	Date           time.Time         `gorm:"not null;index" json:"date"`
	InvoiceType    InvoiceType       `gorm:"size:12;not null" json:"invoice_type"`
	PartyID        uint              `gorm:"index" json:"party_id"`
	PartyName      string            `gorm:"not null" json:"party_name"`
	PartyGSTIN     string            `gorm:"size:20" json:"party_gstin"`
	PartyAddress   string            `gorm:"type:text" json:"party_address"`
	PartyStateCode string            `gorm:"size:4" json:"party_state_code"`
	GRNo           string            `gorm:"size:60" json:"gr_no"`
	VehicleNo      string            `gorm:"size:40" json:"vehicle_no"`
	Transport      string            `gorm:"size:120" json:"transport"`
	Items          []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items"`
	TotalTaxable   decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_taxable"`
	TotalCGST      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_cgst"`
	TotalSGST      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_sgst"`
	TotalIGST      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_igst"`
	GrandTotal     decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	RoundOff       decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"round_off"`
	Status         string            `gorm:"size:12;not null;default:'PAID'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// InvoiceLineItem captures the product at the moment it was billed. The
// name/batch/expiry/HSN snapshot keeps historical invoices stable under
// later catalog edits. The four tax amounts and the total are derived by
// the tax engine and never set independently.
type InvoiceLineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index" json:"invoice_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Name   string `gorm:"not null" json:"name"`
	Batch  string `gorm:"size:60" json:"batch"`
	Expiry string `gorm:"size:20" json:"expiry"`
	HSN    string `gorm:"size:20" json:"hsn"`

	Quantity        int             `gorm:"not null;default:0" json:"quantity"`
	FreeQuantity    int             `gorm:"not null;default:0" json:"free_quantity"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_percent"`
	SaleRate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sale_rate"`
	MRP             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"mrp"`
	OldMRP          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"old_mrp"`
	GSTRate         int             `gorm:"not null;default:0" json:"gst_rate"`

	TaxableValue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"taxable_value"`
	CGSTAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cgst_amount"`
	SGSTAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sgst_amount"`
	IGSTAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"igst_amount"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
}
