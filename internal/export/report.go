// Package export renders invoices as PDF and record listings as CSV or XLSX
// downloads.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atcommodities/erp/internal/models"
	"github.com/shopspring/decimal"
)

// Format is a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Table is a report ready to be written in any Format. Cells hold either a
// string or a float64; CSV renders floats with 2 decimals, XLSX keeps them numeric.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Write renders t to w in format f.
func Write(w io.Writer, t *Table, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// AttendanceTable lists attendance records. Open records show
// "Not checked out" and zero hours.
func AttendanceTable(records []*models.AttendanceRecord) *Table {
	t := &Table{
		Sheet:  "Attendance",
		Header: []string{"Employee Name", "Date", "Check In", "Check Out", "Location", "Total Hours"},
	}
	for _, r := range records {
		checkOut := r.CheckOut
		var hours any = r.TotalHours
		if !r.CheckedOut() {
			checkOut = "Not checked out"
			hours = "0"
		}
		t.Rows = append(t.Rows, []any{
			r.EmployeeName, r.Date, r.CheckIn, checkOut, string(r.WorkLocation), hours,
		})
	}
	return t
}

// InvoicesTable lists invoice headers with their totals.
func InvoicesTable(invoices []*models.Invoice) *Table {
	t := &Table{
		Sheet:  "Invoices",
		Header: []string{"Invoice Number", "Client", "Date", "Subtotal", "Tax", "Discount", "Total", "Status"},
	}
	for _, inv := range invoices {
		t.Rows = append(t.Rows, []any{
			inv.Number, inv.ClientName, inv.Date,
			inv.Subtotal, inv.Tax, inv.Discount, inv.Total,
			string(inv.Status),
		})
	}
	return t
}

// DeliveriesTable lists the delivery log.
func DeliveriesTable(deliveries []*models.Delivery) *Table {
	t := &Table{
		Sheet:  "Deliveries",
		Header: []string{"Vehicle Number", "Driver Name", "Date", "Time", "Destination", "Load Details", "Status"},
	}
	for _, d := range deliveries {
		t.Rows = append(t.Rows, []any{
			d.VehicleNumber, d.DriverName, d.Date, d.Time, d.Destination, d.LoadDetails, string(d.Status),
		})
	}
	return t
}

func cellText(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return decimal.NewFromFloat(c).StringFixed(2)
	default:
		return fmt.Sprint(c)
	}
}

// Period selects the dates a report covers.
type Period struct {
	Daily bool
	Date  string // set when Daily
	Start string
	End   string
}

// ResolvePeriod fills in defaults the way the download links do: a daily
// report defaults to today, a ranged one to the first of the month through today.
func ResolvePeriod(kind, date, start, end string, today time.Time) (Period, error) {
	switch kind {
	case "", "daily":
		if date == "" {
			date = today.Format(time.DateOnly)
		}
		if err := checkDate("date", date); err != nil {
			return Period{}, err
		}
		return Period{Daily: true, Date: date, Start: date, End: date}, nil
	case "monthly", "range":
		if start == "" {
			start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).Format(time.DateOnly)
		}
		if end == "" {
			end = today.Format(time.DateOnly)
		}
		if err := checkDate("start", start); err != nil {
			return Period{}, err
		}
		if err := checkDate("end", end); err != nil {
			return Period{}, err
		}
		if end < start {
			return Period{}, fmt.Errorf("end %s is before start %s", end, start)
		}
		return Period{Start: start, End: end}, nil
	}
	return Period{}, fmt.Errorf("unknown report type %q", kind)
}

func checkDate(field, v string) error {
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return fmt.Errorf("%s %q is not YYYY-MM-DD", field, v)
	}
	return nil
}

// ReportFilename names a download:
//
//	attendance_daily_2026-03-14.csv
//	deliveries_monthly_2026-03-01_to_2026-03-14.xlsx
//	invoices_all_2026-03-01_to_2026-03-14.csv
//	invoices_Niazi_Bricks_2026-03-01_to_2026-03-14.csv
//
// Invoice reports are always ranged; client is empty for all clients.
func ReportFilename(report string, p Period, client string, f Format) string {
	var name string
	switch {
	case report == "invoices":
		who := "all"
		if client != "" {
			who = strings.ReplaceAll(client, " ", "_")
		}
		name = fmt.Sprintf("invoices_%s_%s_to_%s", who, p.Start, p.End)
	case p.Daily:
		name = fmt.Sprintf("%s_daily_%s", report, p.Date)
	default:
		name = fmt.Sprintf("%s_monthly_%s_to_%s", report, p.Start, p.End)
	}
	return name + "." + string(f)
}
