// Package ledger keeps the flat-file records written by the command line
// tool: invoice PDFs, daily attendance sheets and the delivery log.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/export"
)

// Client is an entry in the fixed client list offered when invoicing.
type Client struct {
	Company string
	Contact string
}

// Clients are offered by option number, starting at 1.
var Clients = []Client{
	{Company: "A.T Commodities", Contact: "Mr Adnan"},
	{Company: "Niazi Bricks", Contact: "Mr Talha Niazi Sb"},
}

// Employees are asked about, in order, when marking attendance.
var Employees = []string{
	"Inam ur Rehman Ansari",
	"Ebad Ur Rehman",
	"Talha Sidiqqui",
	"Asad Anwar",
}

const deliveriesFile = "deliveries.csv"

// Ledger writes records under a single directory.
type Ledger struct {
	dir string
	now func() time.Time
}

// New opens the records directory, creating it if needed.
func New(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}
	return &Ledger{dir: dir, now: time.Now}, nil
}

// Dir returns the records directory.
func (l *Ledger) Dir() string { return l.dir }

// CoalInvoice is a single-line coal invoice as captured at the prompt.
type CoalInvoice struct {
	Client       Client
	Number       string
	DeliveryDate string // free text, e.g. 14-Mar-2026
	VehicleNo    string
	Quantity     float64 // metric tons
	UnitPrice    float64
}

// Totals computes the invoice totals. There is no tax or discount on
// these invoices, so the grand total is quantity × unit price.
func (inv CoalInvoice) Totals() (calculator.InvoiceTotals, error) {
	return calculator.ComputeTotals([]calculator.LineItem{inv.line()}, 0, 0)
}

func (inv CoalInvoice) line() calculator.LineItem {
	return calculator.LineItem{
		Description: fmt.Sprintf("Coal (%s)", inv.VehicleNo),
		Quantity:    inv.Quantity,
		UnitPrice:   inv.UnitPrice,
	}
}

// WriteInvoice renders Invoice_<number>.pdf and returns its path.
func (l *Ledger) WriteInvoice(inv CoalInvoice) (string, error) {
	if strings.TrimSpace(inv.Number) == "" {
		return "", errors.New("invoice number required")
	}
	totals, err := inv.Totals()
	if err != nil {
		return "", err
	}

	li := inv.line()
	doc := export.InvoiceDocument{
		Number:    inv.Number,
		Date:      l.now().Format(time.DateOnly),
		Customer:  inv.Client.Contact,
		PayableTo: inv.Client.Company,
		Lines: []export.DocumentLine{{
			Description:  li.Description,
			DeliveryDate: inv.DeliveryDate,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			Total:        li.LineTotal(),
		}},
		Subtotal: totals.Subtotal,
		Total:    totals.GrandTotal,
	}

	path := filepath.Join(l.dir, "Invoice_"+safeName(inv.Number)+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.InvoicePDF(f, doc); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	slog.Debug("Invoice written", "path", path, "total", totals.GrandTotal)
	return path, nil
}

// Mark is one employee's presence for the day.
type Mark struct {
	Employee string
	Present  string // as answered, normally Y or N
}

// WriteAttendance writes attendance_<YYYY-MM-DD>.csv for today, replacing
// any sheet already written today.
func (l *Ledger) WriteAttendance(marks []Mark) (string, error) {
	path := filepath.Join(l.dir, "attendance_"+l.now().Format(time.DateOnly)+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"Employee", "Present (Y/N)"})
	for _, m := range marks {
		_ = w.Write([]string{m.Employee, m.Present})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

// DeliveryEntry is one line of the delivery log.
type DeliveryEntry struct {
	Date      string
	Client    string
	VehicleNo string
	Quantity  string
}

// AppendDelivery adds an entry to deliveries.csv, writing the header when
// the file is new.
func (l *Ledger) AppendDelivery(e DeliveryEntry) (string, error) {
	path := filepath.Join(l.dir, deliveriesFile)

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		_ = w.Write([]string{"Date", "Client", "Vehicle No", "Quantity"})
	}
	_ = w.Write([]string{e.Date, e.Client, e.VehicleNo, e.Quantity})
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

// safeName keeps an invoice number usable as a file name.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
}
