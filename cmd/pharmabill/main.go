package main

import (
	"context"
	"flag"
	"log"

	"github.com/gopidist/pharmabill/internal/config"
	"github.com/gopidist/pharmabill/internal/db"
	"github.com/gopidist/pharmabill/internal/importer"
	"github.com/gopidist/pharmabill/internal/report"
	"github.com/gopidist/pharmabill/internal/store"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag   = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	importProductsArg = flag.String("import-products", "", "Import products from an .xlsx file and exit")
	importPartiesArg  = flag.String("import-parties", "", "Import parties from an .xlsx file and exit")
	exportInvoiceArg  = flag.String("export-invoice", "", "Invoice number to export as .xlsx")
	exportOutArg      = flag.String("out", "invoice.xlsx", "Output path for -export-invoice")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	logger := config.GetLogger()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}

	ctx := context.Background()
	switch {
	case *importProductsArg != "":
		n, err := importer.Products(ctx, store.NewCatalog(conn), *importProductsArg)
		if err != nil {
			config.LogError(logger, "main.go", "main", "import products", *importProductsArg, err)
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("imported %d products", n)
	case *importPartiesArg != "":
		n, err := importer.Parties(ctx, store.NewParties(conn), *importPartiesArg)
		if err != nil {
			config.LogError(logger, "main.go", "main", "import parties", *importPartiesArg, err)
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("imported %d parties", n)
	case *exportInvoiceArg != "":
		inv, err := store.NewInvoices(conn).GetByNumber(ctx, *exportInvoiceArg)
		if err != nil {
			log.Fatalf("invoice %q: %v", *exportInvoiceArg, err)
		}
		profile, err := store.NewProfile(conn).Get(ctx)
		if err != nil {
			log.Fatalf("profile: %v", err)
		}
		if err := report.WriteInvoiceXLSX(inv, profile, *exportOutArg); err != nil {
			config.LogError(logger, "main.go", "main", "export invoice", inv.InvoiceNo, err)
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("wrote %s", *exportOutArg)
	default:
		flag.Usage()
	}
}
