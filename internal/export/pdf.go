package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/models"
)

// InvoiceDocument is everything printed on an invoice PDF.
type InvoiceDocument struct {
	Number    string
	Date      string
	Customer  string // "Invoice for"
	PayableTo string

	Lines []DocumentLine

	// Subtotal, Tax and Discount are printed only when Tax or Discount is non-zero.
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// DocumentLine is one row of the item table. DeliveryDate adds a column when
// any line carries one; quantities are metric tons.
type DocumentLine struct {
	Description  string
	DeliveryDate string
	Quantity     float64
	UnitPrice    float64
	Total        float64
}

// NewInvoiceDocument prepares a stored invoice for printing.
func NewInvoiceDocument(inv *models.Invoice, payableTo string) InvoiceDocument {
	doc := InvoiceDocument{
		Number:    inv.Number,
		Date:      inv.Date,
		Customer:  inv.ClientName,
		PayableTo: payableTo,
		Subtotal:  inv.Subtotal,
		Tax:       inv.Tax,
		Discount:  inv.Discount,
		Total:     inv.Total,
	}
	for _, item := range inv.Items {
		doc.Lines = append(doc.Lines, DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return doc
}

// AmountInWords is the words line of the document. The total is truncated
// to whole rupees; a negative total has no words.
func (d InvoiceDocument) AmountInWords() string {
	words, err := calculator.TotalToWords(d.Total)
	if err != nil {
		return ""
	}
	return words
}

func (d InvoiceDocument) hasDeliveryDates() bool {
	for _, l := range d.Lines {
		if l.DeliveryDate != "" {
			return true
		}
	}
	return false
}

// InvoicePDF renders doc as an A4 PDF.
func InvoicePDF(w io.Writer, doc InvoiceDocument) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 15, 25)
	pdf.AddPage()

	// Space for the letterhead on pre-printed stationery.
	pdf.Ln(50)

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	submitted := doc.Date
	if t, err := time.Parse(time.DateOnly, doc.Date); err == nil {
		submitted = t.Format("02/01/2006")
	}
	pdf.CellFormat(0, 6, "Submitted on: "+submitted, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Parties
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Invoice for", "B", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, "Payable to", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Invoice #", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(70, 7, doc.Customer, "B", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, doc.PayableTo, "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, doc.Number, "B", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Items
	withDates := doc.hasDeliveryDates()
	descWidth := 60.0
	if !withDates {
		descWidth = 85
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(211, 211, 211)
	pdf.CellFormat(descWidth, 7, "Description", "1", 0, "L", true, 0, "")
	if withDates {
		pdf.CellFormat(25, 7, "Delivery Date", "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(25, 7, "Qty (M/TON)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Total Price", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range doc.Lines {
		pdf.CellFormat(descWidth, 7, l.Description, "1", 0, "L", false, 0, "")
		if withDates {
			pdf.CellFormat(25, 7, l.DeliveryDate, "1", 0, "C", false, 0, "")
		}
		pdf.CellFormat(25, 7, calculator.FormatQuantity(l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, calculator.FormatAmount(l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, calculator.FormatAmount(l.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	if doc.Tax != 0 || doc.Discount != 0 {
		summary := []struct {
			label string
			value float64
		}{
			{"Subtotal", doc.Subtotal},
			{"Tax", doc.Tax},
			{"Discount", -doc.Discount},
		}
		for _, s := range summary {
			pdf.CellFormat(135, 6, s.label, "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, calculator.FormatAmount(s.value), "", 1, "R", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Total: "+calculator.FormatAmount(doc.Total), "", 1, "L", false, 0, "")
	if words := doc.AmountInWords(); words != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, "Amount in words: "+words, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice %s: %w", doc.Number, err)
	}
	return nil
}
