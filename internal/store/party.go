package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/gorm"
)

// Parties holds customer records. Read-only to the billing engine.
type Parties struct {
	DB *gorm.DB
}

func NewParties(db *gorm.DB) *Parties { return &Parties{DB: db} }

var likeSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_/]`)

func (s *Parties) Get(ctx context.Context, id uint) (*models.Party, error) {
	var p models.Party
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Parties) Create(ctx context.Context, p *models.Party) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Parties) BulkCreate(ctx context.Context, ps []models.Party) error {
	if len(ps) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&ps).Error
}

func (s *Parties) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := s.DB.WithContext(ctx).Model(&models.Party{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Parties) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Party{}, id).Error
}

// Search matches name, phone or GSTIN against a typed term.
func (s *Parties) Search(ctx context.Context, term string, limit int) ([]models.Party, error) {
	var ps []models.Party
	q := s.DB.WithContext(ctx).Order("is_favorite desc, name")
	term = strings.TrimSpace(term)
	if term != "" {
		safe := likeSanitizer.ReplaceAllString(term, "")
		like := "%" + strings.ReplaceAll(strings.ToLower(safe), "_", `\_`) + "%"
		q = q.Where(`lower(name) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\' OR lower(gstin) LIKE ? ESCAPE '\'`, like, like, like)
	}
	if err := q.Limit(limit).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// ToggleFavorite flips the pin used to sort frequent buyers first.
func (s *Parties) ToggleFavorite(ctx context.Context, id uint) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Update(ctx, id, map[string]interface{}{"is_favorite": !p.IsFavorite})
}
