package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyType string

const (
	PartyWholesale PartyType = "WHOLESALE"
	PartyRetail    PartyType = "RETAIL"
)

// Party is a customer record. Read-only to the billing engine; created
// and edited through party management.
type Party struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"not null;index" json:"name" validate:"required"`
	GSTIN              string          `gorm:"size:20;index" json:"gstin"`
	Address            string          `gorm:"type:text" json:"address"`
	Phone              string          `gorm:"size:40" json:"phone"`
	Type               PartyType       `gorm:"size:12;not null;default:'WHOLESALE'" json:"type" validate:"oneof=WHOLESALE RETAIL"`
	CreditLimit        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit_limit" validate:"gte=0"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"outstanding_balance"`
	IsFavorite         bool            `gorm:"not null;default:false" json:"is_favorite"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
