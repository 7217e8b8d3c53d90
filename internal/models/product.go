package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTRates is the set of slab rates a product may carry.
var GSTRates = []int{0, 5, 12, 18, 28}

// ValidGSTRate reports whether rate is one of the recognised slabs.
func ValidGSTRate(rate int) bool {
	for _, r := range GSTRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Product is a sellable catalog entry. Stock is mutated only by catalog
// edits and by invoice commits; search never writes.
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null;index" json:"name" validate:"required"`
	Batch        string          `gorm:"size:60;not null;index" json:"batch" validate:"required"`
	Expiry       string          `gorm:"size:20" json:"expiry"`
	HSN          string          `gorm:"size:20;index" json:"hsn"`
	Barcode      string          `gorm:"size:40;index" json:"barcode"`
	Category     string          `gorm:"size:60" json:"category"`
	GSTRate      int             `gorm:"not null;default:12" json:"gst_rate"`
	MRP          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"mrp" validate:"gte=0"`
	OldMRP       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"old_mrp"`
	PurchaseRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_rate" validate:"gte=0"`
	SaleRate     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sale_rate" validate:"gte=0"`
	Stock        int             `gorm:"not null;default:0" json:"stock"`
	Manufacturer string          `gorm:"size:120" json:"manufacturer"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
