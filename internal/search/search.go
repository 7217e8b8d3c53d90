// Package search answers keystroke-driven catalog lookups. Two
// strategies trade recall against cost: Accurate rides the store's
// indexes (name prefix, exact batch/barcode/HSN), Fast scans the whole
// catalog and accepts out-of-order keyword fragments. Neither mutates
// catalog state.
package search

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/gorm"
)

// MaxResults caps every query; results beyond the first 50 encountered
// are not returned.
const MaxResults = 50

// Strategy is one matching rule over the catalog. A blank or
// whitespace-only term returns the first MaxResults entries in store
// order, a browse affordance rather than a search result.
type Strategy interface {
	Search(ctx context.Context, term string) ([]models.Product, error)
}

var likeSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_./]`)

// likePattern lowers the term and neutralizes LIKE metacharacters; "_"
// must match a literal underscore, not any single character.
func likePattern(term string) string {
	safe := likeSanitizer.ReplaceAllString(term, "")
	return strings.ReplaceAll(strings.ToLower(safe), "_", `\_`)
}

// Accurate matches a product when its name starts with the term
// (case-insensitive) or its batch, barcode or HSN equals it exactly.
// Answered with indexed predicates, sub-linear in catalog size.
type Accurate struct {
	DB *gorm.DB
}

func NewAccurate(db *gorm.DB) *Accurate { return &Accurate{DB: db} }

func (s *Accurate) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return browse(ctx, s.DB)
	}
	prefix := likePattern(term) + "%"
	var ps []models.Product
	err := s.DB.WithContext(ctx).
		Where(`lower(name) LIKE ? ESCAPE '\' OR batch = ? OR barcode = ? OR hsn = ?`, prefix, term, term, term).
		Limit(MaxResults).
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Fast matches when every whitespace-separated token of the term occurs
// (case-insensitive) somewhere in name, batch, barcode or category.
// Costs a full scan per query; per-keystroke callers are expected to
// debounce harder than in accurate mode.
type Fast struct {
	DB *gorm.DB
}

func NewFast(db *gorm.DB) *Fast { return &Fast{DB: db} }

func (s *Fast) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return browse(ctx, s.DB)
	}
	tokens := strings.Fields(strings.ToLower(term))

	matched := make([]models.Product, 0, MaxResults)
	var batch []models.Product
	err := s.DB.WithContext(ctx).FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		for _, p := range batch {
			if matchesTokens(&p, tokens) {
				matched = append(matched, p)
				if len(matched) >= MaxResults {
					return errStopScan
				}
			}
		}
		return nil
	}).Error
	if err != nil && !errors.Is(err, errStopScan) {
		return nil, err
	}
	return matched, nil
}

// errStopScan short-circuits a batch scan once the result cap is hit.
var errStopScan = errors.New("scan complete")

func matchesTokens(p *models.Product, tokens []string) bool {
	haystack := strings.ToLower(p.Name + " " + p.Batch + " " + p.Barcode + " " + p.Category)
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func browse(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	var ps []models.Product
	if err := db.WithContext(ctx).Order("id").Limit(MaxResults).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}
