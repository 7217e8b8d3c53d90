package store

import (
	"context"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/gorm"
)

// Invoices reads committed invoices. Inserts happen only inside the
// billing commit transaction, never through this store.
type Invoices struct {
	DB *gorm.DB
}

func NewInvoices(db *gorm.DB) *Invoices { return &Invoices{DB: db} }

func (s *Invoices) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Items").First(&inv, id).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *Invoices) GetByNumber(ctx context.Context, invoiceNo string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Items").Where("invoice_no = ?", invoiceNo).First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// Count backs the draft-open numbering scheme.
func (s *Invoices) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Invoice{}).Count(&n).Error
	return n, err
}

func (s *Invoices) List(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	var invs []models.Invoice
	err := s.DB.WithContext(ctx).Preload("Items").Order("id desc").Limit(limit).Offset(offset).Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}
