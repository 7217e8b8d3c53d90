package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gopidist/pharmabill/internal/models"
	"github.com/gopidist/pharmabill/internal/tax"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CashSaleName is recorded when a retail invoice has no party.
const CashSaleName = "Cash Sale"

// Committer persists a draft as one all-or-nothing transaction: the
// invoice insert and every stock decrement either all become visible or
// none do. A failed commit leaves the draft in memory unmodified so the
// operator can retry without re-entering data.
type Committer struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	// DisallowNegativeStock turns on a pre-write availability check.
	// Off by default: the billing desk is allowed to drive stock
	// negative and reconcile later.
	DisallowNegativeStock bool
	// AtomicNumbering re-derives the invoice number from the count seen
	// inside the commit transaction, making numbers unique under
	// concurrent drafting at the cost of the draft-open preview number.
	AtomicNumbering bool
}

func NewCommitter(db *gorm.DB, logger *logrus.Logger) *Committer {
	return &Committer{DB: db, Logger: logger}
}

// Commit validates the draft, snapshots the party, writes the invoice
// and reconciles stock. On any failure the transaction rolls back and
// no partial state is visible to any subsequent read.
func (c *Committer) Commit(ctx context.Context, d *Draft) (*models.Invoice, error) {
	if d.Len() == 0 {
		return nil, ErrEmptyDraft
	}
	if d.InvoiceType == models.InvoiceWholesale && d.Party() == nil {
		return nil, ErrPartyRequired
	}
	if strings.TrimSpace(d.InvoiceNo) == "" && !c.AtomicNumbering {
		return nil, ErrNoInvoiceNumber
	}

	inv := c.assemble(d)

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.AtomicNumbering {
			var count int64
			if err := tx.Model(&models.Invoice{}).Count(&count).Error; err != nil {
				return fmt.Errorf("count invoices: %w", err)
			}
			inv.InvoiceNo = FormatInvoiceNo(d.InvoiceType, count+numberOffset)
		}
		if err := tx.Create(inv).Error; err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		for _, item := range inv.Items {
			var p models.Product
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", item.ProductID, ErrProductMissing)
				}
				return fmt.Errorf("read product %d: %w", item.ProductID, err)
			}
			newStock := p.Stock - (item.Quantity + item.FreeQuantity)
			if c.DisallowNegativeStock && newStock < 0 {
				return fmt.Errorf("product %d stock %d, need %d: %w",
					item.ProductID, p.Stock, item.Quantity+item.FreeQuantity, ErrInsufficientStock)
			}
			// Batch and MRP typed during billing flow back into the
			// catalog so the next invoice starts from the corrected pack.
			err := tx.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
				"stock": newStock,
				"batch": item.Batch,
				"mrp":   item.MRP,
			}).Error
			if err != nil {
				return fmt.Errorf("update product %d: %w", item.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithFields(logrus.Fields{
				"module":    "billing",
				"funcName":  "Commit",
				"invoiceNo": inv.InvoiceNo,
			}).Error(err.Error())
		}
		return nil, err
	}
	return inv, nil
}

// assemble copies the draft and party into the immutable invoice record.
// All party fields are snapshots, not live references.
func (c *Committer) assemble(d *Draft) *models.Invoice {
	agg := d.Totals()
	inv := &models.Invoice{
		InvoiceNo:    d.InvoiceNo,
		Date:         d.Date,
		InvoiceType:  d.InvoiceType,
		GRNo:         d.GRNo,
		VehicleNo:    d.VehicleNo,
		Transport:    d.Transport,
		Items:        d.Lines(),
		TotalTaxable: agg.TotalTaxable,
		TotalCGST:    agg.TotalCGST,
		TotalSGST:    agg.TotalSGST,
		TotalIGST:    agg.TotalIGST,
		GrandTotal:   agg.GrandTotal,
		RoundOff:     agg.RoundOff,
		Status:       "PAID",
	}
	if p := d.Party(); p != nil {
		inv.PartyID = p.ID
		inv.PartyName = p.Name
		inv.PartyGSTIN = p.GSTIN
		inv.PartyAddress = p.Address
		inv.PartyStateCode = tax.StateCodeFromGSTIN(p.GSTIN)
	} else {
		inv.PartyName = CashSaleName
		inv.PartyStateCode = tax.DefaultStateCode
	}
	return inv
}
