package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gopidist/pharmabill/internal/models"
	"github.com/gopidist/pharmabill/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBillingDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Party{}, &models.CompanyProfile{}, &models.Invoice{}, &models.InvoiceLineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name: name, Batch: "B1", Expiry: "12/2026", HSN: "3004",
		GSTRate:  12,
		SaleRate: decimal.RequireFromString("10.00"),
		MRP:      decimal.RequireFromString("12.00"),
		Stock:    stock,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestCommitDecrementsStockIncludingFree(t *testing.T) {
	db := setupBillingDB(t)
	p := seedProduct(t, db, "Paracetamol 500mg", 10)

	d := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if err := d.AddLine(p); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := d.UpdateLine(0, func(it *models.InvoiceLineItem) {
		it.Quantity = 3
		it.FreeQuantity = 1
	}); err != nil {
		t.Fatalf("update line: %v", err)
	}

	inv, err := NewCommitter(db, nil).Commit(context.Background(), d)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if inv.ID == 0 || inv.InvoiceNo != "RET -65" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if inv.PartyName != CashSaleName || inv.PartyStateCode != "24" {
		t.Fatalf("retail without party must commit as cash sale, got %q/%q", inv.PartyName, inv.PartyStateCode)
	}

	var reread models.Product
	if err := db.First(&reread, p.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reread.Stock != 6 {
		t.Fatalf("stock: expected 6 got %d", reread.Stock)
	}
}

func TestCommitWritesBackBatchAndMRP(t *testing.T) {
	db := setupBillingDB(t)
	p := seedProduct(t, db, "Crocin", 10)

	d := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if err := d.AddLine(p); err != nil {
		t.Fatalf("add line: %v", err)
	}
	// operator corrects the batch and the MRP printed on the pack
	if err := d.UpdateLine(0, func(it *models.InvoiceLineItem) {
		it.Batch = "CRX777"
		it.MRP = decimal.RequireFromString("14.50")
	}); err != nil {
		t.Fatalf("update line: %v", err)
	}
	if _, err := NewCommitter(db, nil).Commit(context.Background(), d); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var reread models.Product
	if err := db.First(&reread, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reread.Batch != "CRX777" {
		t.Fatalf("batch correction must propagate, got %q", reread.Batch)
	}
	if !reread.MRP.Equal(decimal.RequireFromString("14.50")) {
		t.Fatalf("mrp correction must propagate, got %s", reread.MRP)
	}
}

func TestCommitPreconditions(t *testing.T) {
	db := setupBillingDB(t)
	c := NewCommitter(db, nil)

	empty := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if _, err := c.Commit(context.Background(), empty); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}

	p := seedProduct(t, db, "Dolo", 5)
	wholesale := NewDraft(sellerProfile(), models.InvoiceWholesale, "TI -65")
	if err := wholesale.AddLine(p); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := c.Commit(context.Background(), wholesale); !errors.Is(err, ErrPartyRequired) {
		t.Fatalf("expected ErrPartyRequired, got %v", err)
	}

	unnumbered := NewDraft(sellerProfile(), models.InvoiceRetail, "")
	if err := unnumbered.AddLine(p); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := c.Commit(context.Background(), unnumbered); !errors.Is(err, ErrNoInvoiceNumber) {
		t.Fatalf("expected ErrNoInvoiceNumber, got %v", err)
	}

	var n int64
	db.Model(&models.Invoice{}).Count(&n)
	if n != 0 {
		t.Fatalf("failed preconditions must write nothing, found %d invoices", n)
	}
}

func TestCommitRollsBackOnMissingProduct(t *testing.T) {
	db := setupBillingDB(t)
	keep := seedProduct(t, db, "Keep", 10)
	gone := seedProduct(t, db, "Gone", 10)

	d := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if err := d.AddLine(keep); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.AddLine(gone); err != nil {
		t.Fatalf("add: %v", err)
	}
	// the second product vanishes between drafting and commit
	if err := db.Delete(&models.Product{}, gone.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := NewCommitter(db, nil).Commit(context.Background(), d)
	if !errors.Is(err, ErrProductMissing) {
		t.Fatalf("expected ErrProductMissing, got %v", err)
	}

	// no invoice, no stock change: the first line's decrement rolled back
	var n int64
	db.Model(&models.Invoice{}).Count(&n)
	if n != 0 {
		t.Fatalf("rollback must remove invoice, found %d", n)
	}
	var reread models.Product
	if err := db.First(&reread, keep.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reread.Stock != 10 {
		t.Fatalf("stock must be untouched after rollback, got %d", reread.Stock)
	}
	// the draft survives in memory for retry
	if d.Len() != 2 {
		t.Fatalf("draft must stay intact after failed commit")
	}
}

func TestCommitAllowsNegativeStockByDefault(t *testing.T) {
	db := setupBillingDB(t)
	p := seedProduct(t, db, "Scarce", 1)

	d := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if err := d.AddLine(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.UpdateLine(0, func(it *models.InvoiceLineItem) { it.Quantity = 5 }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := NewCommitter(db, nil).Commit(context.Background(), d); err != nil {
		t.Fatalf("commit: %v", err)
	}
	var reread models.Product
	db.First(&reread, p.ID)
	if reread.Stock != -4 {
		t.Fatalf("negative stock is allowed by default, got %d", reread.Stock)
	}
}

func TestCommitDisallowNegativeStockPolicy(t *testing.T) {
	db := setupBillingDB(t)
	p := seedProduct(t, db, "Scarce", 1)

	d := NewDraft(sellerProfile(), models.InvoiceRetail, "RET -65")
	if err := d.AddLine(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.UpdateLine(0, func(it *models.InvoiceLineItem) { it.Quantity = 5 }); err != nil {
		t.Fatalf("update: %v", err)
	}
	c := NewCommitter(db, nil)
	c.DisallowNegativeStock = true
	if _, err := c.Commit(context.Background(), d); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var reread models.Product
	db.First(&reread, p.ID)
	if reread.Stock != 1 {
		t.Fatalf("stock must be untouched, got %d", reread.Stock)
	}
}

func TestCommitSnapshotsPartyAndSurvivesCatalogEdits(t *testing.T) {
	db := setupBillingDB(t)
	p := seedProduct(t, db, "Azithro 250", 20)
	party := models.Party{Name: "Maharashtra Medico", GSTIN: "27AAACX1234F1Z5", Address: "Mumbai", Type: models.PartyWholesale}
	if err := db.Create(&party).Error; err != nil {
		t.Fatalf("seed party: %v", err)
	}

	d := NewDraft(sellerProfile(), models.InvoiceWholesale, "TI -65")
	if err := d.AddLine(p); err != nil {
		t.Fatalf("add: %v", err)
	}
	d.SetParty(&party)

	inv, err := NewCommitter(db, nil).Commit(context.Background(), d)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if inv.PartyStateCode != "27" || inv.PartyName != "Maharashtra Medico" {
		t.Fatalf("party snapshot wrong: %+v", inv)
	}
	// inter-state: totals are pure IGST
	if !inv.TotalCGST.IsZero() || !inv.TotalSGST.IsZero() || inv.TotalIGST.IsZero() {
		t.Fatalf("expected IGST-only totals: cgst=%s sgst=%s igst=%s", inv.TotalCGST, inv.TotalSGST, inv.TotalIGST)
	}

	// a later catalog rename must not reach the committed snapshot
	if err := db.Model(&models.Product{}).Where("id = ?", p.ID).Update("name", "Renamed").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := store.NewInvoices(db).Get(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if got.Items[0].Name != "Azithro 250" {
		t.Fatalf("historical invoice changed with the catalog: %q", got.Items[0].Name)
	}
}

func TestNumberingRacyByDefault(t *testing.T) {
	db := setupBillingDB(t)
	invoices := store.NewInvoices(db)

	// two drafts opened before either commits legitimately share a number
	n1, err := NextInvoiceNo(context.Background(), invoices, models.InvoiceWholesale)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	n2, err := NextInvoiceNo(context.Background(), invoices, models.InvoiceWholesale)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if n1 != "TI -65" || n2 != "TI -65" {
		t.Fatalf("draft-open numbering is count-based: got %q, %q", n1, n2)
	}
	r, err := NextInvoiceNo(context.Background(), invoices, models.InvoiceRetail)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if r != "RET -65" {
		t.Fatalf("retail prefix: got %q", r)
	}
}

func TestAtomicNumberingAssignsUniqueNumbers(t *testing.T) {
	db := setupBillingDB(t)
	pa := seedProduct(t, db, "A", 10)
	pb := seedProduct(t, db, "B", 10)

	c := NewCommitter(db, nil)
	c.AtomicNumbering = true

	mk := func(p models.Product, preview string) *Draft {
		d := NewDraft(sellerProfile(), models.InvoiceRetail, preview)
		if err := d.AddLine(p); err != nil {
			t.Fatalf("add: %v", err)
		}
		return d
	}
	// a stale preview number and no preview at all: both get replaced
	d1, d2 := mk(pa, "RET -0"), mk(pb, "")
	i1, err := c.Commit(context.Background(), d1)
	if err != nil {
		t.Fatalf("commit 1: %v", err)
	}
	i2, err := c.Commit(context.Background(), d2)
	if err != nil {
		t.Fatalf("commit 2: %v", err)
	}
	if i1.InvoiceNo == i2.InvoiceNo {
		t.Fatalf("atomic numbering must not reuse %q", i1.InvoiceNo)
	}
	if i1.InvoiceNo != "RET -65" || i2.InvoiceNo != "RET -66" {
		t.Fatalf("sequence: got %q, %q", i1.InvoiceNo, i2.InvoiceNo)
	}
}
