package models

import "fmt"

// InvoiceStatus tracks an invoice from creation to payment.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// ParseInvoiceStatus validates a status string.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch st := InvoiceStatus(s); st {
	case InvoiceDraft, InvoiceSent, InvoicePaid:
		return st, nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

// Invoice is a client invoice together with its computed totals.
// The totals are stored unrounded and rounded only when rendered.
type Invoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string

	// Number is the human invoice number printed on the document. Unique.
	Number string

	ClientID   string
	ClientName string

	// Date is the invoice date, "2006-01-02".
	Date string

	Items []InvoiceItem

	TaxPercent      float64
	DiscountPercent float64

	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64

	Status InvoiceStatus

	// CreatedAt is the Unix timestamp when the invoice was created.
	CreatedAt int64
}

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is what was sold (e.g., "Coal (LES-1234)").
	Description string

	Quantity  float64
	UnitPrice float64

	// Total is Quantity × UnitPrice.
	Total float64
}
