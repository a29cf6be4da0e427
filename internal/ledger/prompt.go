package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atcommodities/erp/internal/calculator"
)

// ErrInputClosed is returned when the input ends mid-prompt.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskFloat asks until the answer parses as a number.
func (p *Prompter) AskFloat(label string) (float64, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "%q is not a number, try again.\n", answer)
	}
}

// Say prints a line.
func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// InvoiceFlow captures a coal invoice and writes its PDF.
func InvoiceFlow(p *Prompter, l *Ledger) error {
	p.Say("Select Client:")
	for i, c := range Clients {
		p.Say("%d. %s (%s)", i+1, c.Company, c.Contact)
	}

	var client Client
	for {
		answer, err := p.Ask(fmt.Sprintf("Enter option (1-%d): ", len(Clients)))
		if err != nil {
			return err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(Clients) {
			client = Clients[n-1]
			break
		}
		p.Say("Invalid option.")
	}

	inv := CoalInvoice{Client: client}
	var err error
	if inv.Number, err = p.Ask("Invoice No.: "); err != nil {
		return err
	}
	if inv.DeliveryDate, err = p.Ask("Delivery Date (DD-MMM-YYYY): "); err != nil {
		return err
	}
	if inv.VehicleNo, err = p.Ask("Vehicle No.: "); err != nil {
		return err
	}
	if inv.Quantity, err = p.AskFloat("Quantity (M/TON): "); err != nil {
		return err
	}
	if inv.UnitPrice, err = p.AskFloat("Unit Price (Rs): "); err != nil {
		return err
	}

	path, err := l.WriteInvoice(inv)
	if err != nil {
		return err
	}
	p.Say("Invoice PDF saved as %s", path)
	return nil
}

// AttendanceFlow asks about each employee and writes today's sheet.
func AttendanceFlow(p *Prompter, l *Ledger) error {
	marks := make([]Mark, 0, len(Employees))
	for _, emp := range Employees {
		answer, err := p.Ask(fmt.Sprintf("Is %s present today? (Y/N): ", emp))
		if err != nil {
			return err
		}
		marks = append(marks, Mark{Employee: emp, Present: strings.ToUpper(answer)})
	}

	path, err := l.WriteAttendance(marks)
	if err != nil {
		return err
	}
	p.Say("Attendance for %s saved in %s", l.now().Format("2006-01-02"), path)
	return nil
}

// DeliveryFlow captures one delivery and appends it to the log.
func DeliveryFlow(p *Prompter, l *Ledger) error {
	var (
		e   DeliveryEntry
		err error
	)
	if e.Date, err = p.Ask("Delivery Date (DD-MMM-YYYY): "); err != nil {
		return err
	}
	if e.Client, err = p.Ask("Client Name: "); err != nil {
		return err
	}
	if e.VehicleNo, err = p.Ask("Vehicle No: "); err != nil {
		return err
	}
	if e.Quantity, err = p.Ask("Quantity: "); err != nil {
		return err
	}

	path, err := l.AppendDelivery(e)
	if err != nil {
		return err
	}
	p.Say("Delivery logged in %s", path)
	return nil
}

// Menu runs the numbered loop until the operator exits or input ends.
// A failed action is reported and the loop continues.
func Menu(p *Prompter, l *Ledger) error {
	actions := map[string]func(*Prompter, *Ledger) error{
		"1": InvoiceFlow,
		"2": AttendanceFlow,
		"3": DeliveryFlow,
	}
	for {
		p.Say("\nERP CLI Menu:")
		p.Say("1. Generate Invoice")
		p.Say("2. Mark Attendance")
		p.Say("3. Log Delivery")
		p.Say("4. Exit")

		choice, err := p.Ask("Select option: ")
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "4" {
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			p.Say("Invalid choice. Try again.")
			continue
		}
		if err := action(p, l); err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			p.Say("Error: %v", err)
		}
	}
}

// PrintTotals writes an invoice summary with the amount in words.
func PrintTotals(w io.Writer, t calculator.InvoiceTotals) {
	fmt.Fprintf(w, "Subtotal: %s\n", calculator.FormatAmount(t.Subtotal))
	fmt.Fprintf(w, "Tax:      %s\n", calculator.FormatAmount(t.TaxAmount))
	fmt.Fprintf(w, "Discount: %s\n", calculator.FormatAmount(t.DiscountAmount))
	fmt.Fprintf(w, "Total:    %s\n", calculator.FormatAmount(t.GrandTotal))
	if words, err := calculator.TotalToWords(t.GrandTotal); err == nil {
		fmt.Fprintf(w, "In words: %s\n", words)
	}
}

// ParseItem reads "description:quantity:unit price". The description may
// itself contain colons.
func ParseItem(s string) (calculator.LineItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return calculator.LineItem{}, fmt.Errorf("item %q: want description:quantity:price", s)
	}
	n := len(parts)
	qty, err := strconv.ParseFloat(strings.TrimSpace(parts[n-2]), 64)
	if err != nil {
		return calculator.LineItem{}, fmt.Errorf("item %q: quantity: %w", s, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[n-1]), 64)
	if err != nil {
		return calculator.LineItem{}, fmt.Errorf("item %q: unit price: %w", s, err)
	}
	return calculator.LineItem{
		Description: strings.TrimSpace(strings.Join(parts[:n-2], ":")),
		Quantity:    qty,
		UnitPrice:   price,
	}, nil
}
