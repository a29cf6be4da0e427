package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/atcommodities/erp/internal/export"
	"github.com/atcommodities/erp/internal/metrics"
	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// errBadRequest marks query parameter problems.
var errBadRequest = errors.New("bad request")

// handleDownload serves /downloads/{report} as CSV or XLSX.
//
// Query: type=daily|monthly, date, start, end, client (invoices only),
// format=csv|xlsx. Invoice reports always cover a date range.
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := mux.Vars(r)["report"]
	q := r.URL.Query()

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	kind := q.Get("type")
	if report == "invoices" {
		kind = "monthly"
	}
	period, err := export.ResolvePeriod(kind, q.Get("date"), q.Get("start"), q.Get("end"), s.now())
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	var buf bytes.Buffer
	filename, err := s.renderReport(r.Context(), &buf, report, period, q.Get("client"), format)
	metrics.ObserveExport(report, string(format), err, time.Since(start))
	if err != nil {
		slog.Error("Download failed", "report", report, "format", format, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Report downloaded", "report", report, "file", filename, "bytes", buf.Len())
	writeAttachment(w, filename, format.ContentType(), buf.Bytes())
}

func (s *server) renderReport(ctx context.Context, buf *bytes.Buffer, report string, p export.Period, clientID string, format export.Format) (string, error) {
	var (
		table      *export.Table
		clientName string
	)

	switch report {
	case "attendance":
		records, err := s.listAttendance(ctx, p)
		if err != nil {
			return "", err
		}
		table = export.AttendanceTable(records)
	case "invoices":
		if clientID != "" {
			client, err := s.store.GetClient(ctx, clientID)
			if err != nil {
				return "", err
			}
			clientName = client.Name
		}
		invoices, err := s.store.ListInvoicesBetween(ctx, p.Start, p.End, clientID)
		if err != nil {
			return "", err
		}
		table = export.InvoicesTable(invoices)
	case "deliveries":
		deliveries, err := s.store.ListDeliveriesBetween(ctx, p.Start, p.End)
		if err != nil {
			return "", err
		}
		table = export.DeliveriesTable(deliveries)
	default:
		return "", fmt.Errorf("%w: unknown report %q", errBadRequest, report)
	}

	if err := export.Write(buf, table, format); err != nil {
		return "", err
	}
	return export.ReportFilename(report, p, clientName, format), nil
}

func (s *server) listAttendance(ctx context.Context, p export.Period) ([]*models.AttendanceRecord, error) {
	if p.Daily {
		return s.store.ListAttendanceByDate(ctx, p.Date)
	}
	return s.store.ListAttendanceBetween(ctx, p.Start, p.End)
}

// handleInvoicePDF serves /invoices/{id}/pdf.
func (s *server) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := mux.Vars(r)["id"]

	inv, err := s.store.GetInvoice(r.Context(), id)
	if err != nil {
		metrics.ObserveExport("invoice", "pdf", err, time.Since(start))
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	err = export.InvoicePDF(&buf, export.NewInvoiceDocument(inv, s.company))
	metrics.ObserveExport("invoice", "pdf", err, time.Since(start))
	if err != nil {
		slog.Error("Invoice PDF failed", "invoice_id", id, "error", err)
		writeError(w, err)
		return
	}

	writeAttachment(w, "Invoice_"+inv.Number+".pdf", "application/pdf", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
