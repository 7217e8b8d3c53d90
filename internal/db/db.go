package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gopidist/pharmabill/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the store and brings the schema up to date.
// A postgres:// DSN selects the Postgres driver; anything else is
// treated as a SQLite file path (the normal single-user deployment).
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if isPostgresDSN(dsn) {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	for _, m := range []interface{}{
		&models.Product{}, &models.Party{}, &models.CompanyProfile{},
		&models.Invoice{}, &models.InvoiceLineItem{},
	} {
		if migErr := conn.AutoMigrate(m); migErr != nil {
			return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}

	if err := SeedProfile(conn); err != nil {
		return nil, fmt.Errorf("seed profile: %w", err)
	}
	return conn, nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// SeedProfile creates the singleton company profile on first run. The
// defaults are the distributor's real letterhead values; Settings can
// change them later but the row always exists.
func SeedProfile(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.CompanyProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	profile := models.CompanyProfile{
		CompanyName:     "GOPI DISTRIBUTOR",
		AddressLine1:    "74/20/4, Navyug Colony",
		AddressLine2:    "Bhulabhai Park Crossroad, Ahmedabad-22",
		GSTIN:           "24AADPO7411Q1ZE",
		DLNo1:           "GJ-ADC-AA/1946",
		DLNo2:           "GJ-ADC-AA/4967",
		DLNo3:           "GJ-ADC-AA/1953",
		DLNo4:           "GJ-ADC-AA/4856",
		Phone:           "07925383834, 8460143984",
		Email:           "info@gopidistributor.com",
		Terms:           "Bill No. is must while returning EXP. Products\nE.&.O.E.",
		Theme:           "blue",
		InvoiceTemplate: "authentic",
		UseDefaultGST:   true,
		DefaultGSTRate:  5,
	}
	return conn.Create(&profile).Error
}
