package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gopidist/pharmabill/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteInvoiceXLSX(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNo:      "TI -82",
		Date:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		InvoiceType:    models.InvoiceWholesale,
		PartyName:      "Maharashtra Medico",
		PartyGSTIN:     "27AAACX1234F1Z5",
		PartyStateCode: "27",
		Items: []models.InvoiceLineItem{
			{
				Name: "Paracetamol 500mg", Batch: "PC01", Expiry: "12/2026", HSN: "3004",
				Quantity: 10, GSTRate: 12,
				SaleRate:     decimal.RequireFromString("10"),
				TaxableValue: decimal.RequireFromString("100"),
				IGSTAmount:   decimal.RequireFromString("12"),
				TotalAmount:  decimal.RequireFromString("112"),
			},
		},
		TotalTaxable: decimal.RequireFromString("100"),
		TotalIGST:    decimal.RequireFromString("12"),
		GrandTotal:   decimal.RequireFromString("112"),
		RoundOff:     decimal.Zero,
	}
	profile := &models.CompanyProfile{
		CompanyName: "GOPI DISTRIBUTOR",
		GSTIN:       "24AADPO7411Q1ZE",
		Terms:       "E.&.O.E.",
	}

	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	require.NoError(t, WriteInvoiceXLSX(inv, profile, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		return v
	}
	require.Equal(t, "GOPI DISTRIBUTOR", get("A1"))
	require.Equal(t, "Invoice No: TI -82", get("D2"))
	require.Equal(t, "Date: 14-03-2026", get("D3"))
	require.Equal(t, "Buyer: Maharashtra Medico", get("A6"))
	require.Equal(t, "Paracetamol 500mg", get("A11"))
	require.Equal(t, "112.00", get("N11"))
	require.Equal(t, "Rupees One Hundred and Twelve Only", get("A20"))
}
