package models

import "time"

// CompanyProfile is the singleton seller configuration. Exactly one row
// exists; it is created on first run with fixed defaults and read-only
// to the billing engine.
type CompanyProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CompanyName     string    `gorm:"not null" json:"company_name"`
	AddressLine1    string    `json:"address_line1"`
	AddressLine2    string    `json:"address_line2"`
	GSTIN           string    `gorm:"size:20" json:"gstin"`
	DLNo1           string    `gorm:"size:40" json:"dl_no1"`
	DLNo2           string    `gorm:"size:40" json:"dl_no2"`
	DLNo3           string    `gorm:"size:40" json:"dl_no3"`
	DLNo4           string    `gorm:"size:40" json:"dl_no4"`
	Phone           string    `gorm:"size:60" json:"phone"`
	Email           string    `gorm:"size:120" json:"email"`
	Terms           string    `gorm:"type:text" json:"terms"`
	Theme           string    `gorm:"size:20;default:'blue'" json:"theme"`
	InvoiceTemplate string    `gorm:"size:20;default:'authentic'" json:"invoice_template"`
	UseDefaultGST   bool      `gorm:"not null;default:false" json:"use_default_gst"`
	DefaultGSTRate  int       `gorm:"not null;default:5" json:"default_gst_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
