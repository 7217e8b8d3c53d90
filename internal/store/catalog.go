package store

import (
	"context"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/gorm"
)

// Catalog holds Product records.
type Catalog struct {
	DB *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog { return &Catalog{DB: db} }

func (c *Catalog) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := c.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (c *Catalog) Create(ctx context.Context, p *models.Product) error {
	return c.DB.WithContext(ctx).Create(p).Error
}

// BulkCreate inserts a chunk of imported products in one statement.
func (c *Catalog) BulkCreate(ctx context.Context, ps []models.Product) error {
	if len(ps) == 0 {
		return nil
	}
	return c.DB.WithContext(ctx).Create(&ps).Error
}

// Update writes a partial field set onto one product.
func (c *Catalog) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := c.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog) Delete(ctx context.Context, id uint) error {
	return c.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// List returns catalog entries in store order.
func (c *Catalog) List(ctx context.Context, limit int) ([]models.Product, error) {
	var ps []models.Product
	if err := c.DB.WithContext(ctx).Order("id").Limit(limit).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}
