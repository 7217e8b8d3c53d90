// Package importer loads catalog and party records from distributor
// spreadsheets. Column headings vary between suppliers, so every field
// is resolved through a list of accepted aliases; unparseable numbers
// fall back to the same defaults the data-entry screen would use.
package importer

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gopidist/pharmabill/internal/models"
	"github.com/gopidist/pharmabill/internal/store"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// chunkSize bounds one bulk insert; large sheets import in slices.
const chunkSize = 2000

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// let gte/lte tags apply to decimal columns
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type row struct {
	headers map[string]int
	cells   []string
}

func (r row) get(aliases ...string) string {
	for _, a := range aliases {
		if idx, ok := r.headers[strings.ToLower(a)]; ok && idx < len(r.cells) {
			if v := strings.TrimSpace(r.cells[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (r row) dec(def string, aliases ...string) decimal.Decimal {
	v := r.get(aliases...)
	if v == "" {
		return decimal.RequireFromString(def)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return decimal.RequireFromString(def)
	}
	return d
}

func (r row) integer(def int, aliases ...string) int {
	v := r.get(aliases...)
	if v == "" {
		return def
	}
	// quantity cells often arrive as "12.0"
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return def
	}
	return int(f)
}

func readSheet(path string) ([]row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s appears to be empty", path)
	}
	headers := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headers[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make([]row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		out = append(out, row{headers: headers, cells: cells})
	}
	return out, nil
}

// Products imports a product sheet into the catalog and returns the
// number of rows inserted.
func Products(ctx context.Context, catalog *store.Catalog, path string) (int, error) {
	rows, err := readSheet(path)
	if err != nil {
		return 0, err
	}
	products := make([]models.Product, 0, len(rows))
	for i, r := range rows {
		name := r.get("Name", "Item", "Medicine", "Description")
		if name == "" {
			name = "Item"
		}
		gst := r.integer(12, "GST")
		if !models.ValidGSTRate(gst) {
			gst = 12
		}
		p := models.Product{
			Name:         name,
			Batch:        firstNonEmpty(r.get("Batch", "Lot"), "N/A"),
			Expiry:       firstNonEmpty(r.get("Expiry", "Exp"), "2026-01-01"),
			HSN:          firstNonEmpty(r.get("HSN"), "3004"),
			Barcode:      r.get("Barcode", "EAN", "GTIN"),
			Category:     r.get("Category", "Group", "Type"),
			GSTRate:      gst,
			MRP:          r.dec("0", "MRP"),
			OldMRP:       r.dec("0", "Old MRP"),
			PurchaseRate: r.dec("0", "Purchase Rate", "P_Rate"),
			SaleRate:     r.dec("0", "Sale Rate", "Rate", "S_Rate"),
			Stock:        r.integer(0, "Stock", "Qty", "Quantity"),
			Manufacturer: r.get("Manufacturer", "Mfg"),
		}
		if err := validate.Struct(&p); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		products = append(products, p)
	}
	return len(products), bulkInsert(ctx, products, catalog.BulkCreate)
}

// Parties imports a customer sheet. Every imported party starts as
// WHOLESALE, matching the data-entry default.
func Parties(ctx context.Context, parties *store.Parties, path string) (int, error) {
	rows, err := readSheet(path)
	if err != nil {
		return 0, err
	}
	out := make([]models.Party, 0, len(rows))
	for i, r := range rows {
		name := r.get("Name", "Party", "Customer", "Firm")
		if name == "" {
			continue // party rows without a name are headers or blanks
		}
		p := models.Party{
			Name:        name,
			GSTIN:       r.get("GSTIN", "GST", "Tin No"),
			Address:     r.get("Address", "Addr", "City"),
			Phone:       r.get("Phone", "Mobile", "Contact", "Ph No"),
			Type:        models.PartyWholesale,
			CreditLimit: r.dec("0", "Credit Limit", "Limit", "Cr Limit"),
		}
		if err := validate.Struct(&p); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, p)
	}
	return len(out), bulkInsert(ctx, out, parties.BulkCreate)
}

func bulkInsert[T any](ctx context.Context, all []T, insert func(context.Context, []T) error) error {
	for start := 0; start < len(all); start += chunkSize {
		end := start + chunkSize
		if end > len(all) {
			end = len(all)
		}
		if err := insert(ctx, all[start:end]); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func firstNonEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
