package store

import (
	"context"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/gorm"
)

// Profile holds the singleton company configuration.
type Profile struct {
	DB *gorm.DB
}

func NewProfile(db *gorm.DB) *Profile { return &Profile{DB: db} }

// Get returns the profile row. Seeding at startup guarantees one exists.
func (s *Profile) Get(ctx context.Context) (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	if err := s.DB.WithContext(ctx).Order("id").First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Profile) Save(ctx context.Context, p *models.CompanyProfile) error {
	return s.DB.WithContext(ctx).Save(p).Error
}
