package report

import (
	"fmt"

	"github.com/gopidist/pharmabill/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// WriteInvoiceXLSX renders one committed invoice to a spreadsheet:
// letterhead, party block, line table and the tax summary. It reads the
// invoice only; layout beyond a flat grid is the PDF layer's job.
func WriteInvoiceXLSX(inv *models.Invoice, profile *models.CompanyProfile, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	set := func(cell string, v interface{}) {
		// excelize only errors on malformed coordinates, which are all
		// literals below
		_ = f.SetCellValue(sheet, cell, v)
	}

	set("A1", profile.CompanyName)
	set("A2", profile.AddressLine1)
	set("A3", profile.AddressLine2)
	set("A4", "GSTIN: "+profile.GSTIN)
	set("D1", "TAX INVOICE")
	set("D2", "Invoice No: "+inv.InvoiceNo)
	set("D3", "Date: "+inv.Date.Format("02-01-2006"))
	set("D4", "Type: "+string(inv.InvoiceType))

	set("A6", "Buyer: "+inv.PartyName)
	set("A7", "GSTIN: "+inv.PartyGSTIN)
	set("A8", "Address: "+inv.PartyAddress)
	set("D6", "State Code: "+inv.PartyStateCode)
	if inv.GRNo != "" {
		set("D7", "GR No: "+inv.GRNo)
	}
	if inv.VehicleNo != "" {
		set("D8", "Vehicle: "+inv.VehicleNo)
	}

	headers := []string{"Item", "Batch", "Expiry", "HSN", "Qty", "Free", "Rate", "Disc%", "GST%", "Taxable", "CGST", "SGST", "IGST", "Total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 10)
		if err != nil {
			return err
		}
		set(cell, h)
	}
	rowN := 11
	for _, it := range inv.Items {
		cells := []interface{}{
			it.Name, it.Batch, it.Expiry, it.HSN,
			it.Quantity, it.FreeQuantity,
			it.SaleRate.StringFixed(2), it.DiscountPercent.StringFixed(2),
			it.GSTRate,
			it.TaxableValue.StringFixed(2),
			it.CGSTAmount.StringFixed(2), it.SGSTAmount.StringFixed(2), it.IGSTAmount.StringFixed(2),
			it.TotalAmount.StringFixed(2),
		}
		for i, v := range cells {
			cell, err := excelize.CoordinatesToCellName(i+1, rowN)
			if err != nil {
				return err
			}
			set(cell, v)
		}
		rowN++
	}

	rowN++
	set(fmt.Sprintf("I%d", rowN), "Taxable")
	set(fmt.Sprintf("J%d", rowN), inv.TotalTaxable.StringFixed(2))
	rowN++
	set(fmt.Sprintf("I%d", rowN), "CGST")
	set(fmt.Sprintf("J%d", rowN), inv.TotalCGST.StringFixed(2))
	rowN++
	set(fmt.Sprintf("I%d", rowN), "SGST")
	set(fmt.Sprintf("J%d", rowN), inv.TotalSGST.StringFixed(2))
	rowN++
	set(fmt.Sprintf("I%d", rowN), "IGST")
	set(fmt.Sprintf("J%d", rowN), inv.TotalIGST.StringFixed(2))
	rowN++
	set(fmt.Sprintf("I%d", rowN), "Round Off")
	set(fmt.Sprintf("J%d", rowN), inv.RoundOff.StringFixed(2))
	rowN++
	set(fmt.Sprintf("I%d", rowN), "Grand Total")
	set(fmt.Sprintf("J%d", rowN), inv.GrandTotal.Add(inv.RoundOff).StringFixed(2))
	rowN += 2
	set(fmt.Sprintf("A%d", rowN), AmountInWords(inv.GrandTotal.Add(inv.RoundOff)))
	if profile.Terms != "" {
		rowN += 2
		set(fmt.Sprintf("A%d", rowN), profile.Terms)
	}

	return f.SaveAs(path)
}
