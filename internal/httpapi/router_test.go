package httpapi

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/atcommodities/erp/internal/auth"
	"github.com/atcommodities/erp/internal/metrics"
	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage/sqlite"
)

type fixture struct {
	store     *sqlite.SQLiteStore
	server    *httptest.Server
	invoiceID string
	clientID  string
}

// newFixture serves the router over a seeded database with one invoice,
// one attendance record and one delivery on 2026-03-14.
func newFixture(t *testing.T, jwt *auth.JWTManager) *fixture {
	t.Helper()
	metrics.Init()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clients, _ := store.ListClients(ctx)
	var niazi *models.Client
	for _, c := range clients {
		if c.Name == "Niazi Bricks" {
			niazi = c
		}
	}
	employees, _ := store.ListEmployees(ctx)

	inv := &models.Invoice{
		Number:     "ATC-001",
		ClientID:   niazi.ID,
		ClientName: niazi.Name,
		Date:       "2026-03-14",
		Items:      []models.InvoiceItem{{Description: "Coal (LES-1234)", Quantity: 10, UnitPrice: 40000, Total: 400000}},
		Subtotal:   400000,
		Total:      400000,
		Status:     models.InvoiceDraft,
	}
	if err := store.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if err := store.CreateAttendance(ctx, &models.AttendanceRecord{
		EmployeeID: employees[0].ID, EmployeeName: employees[0].Name,
		Date: "2026-03-14", CheckIn: "09:00:00", WorkLocation: models.LocationOffice,
	}); err != nil {
		t.Fatalf("CreateAttendance failed: %v", err)
	}
	if err := store.CreateDelivery(ctx, &models.Delivery{
		VehicleNumber: "LES-1234", DriverName: "Rashid", Date: "2026-03-14", Time: "06:45",
		Destination: "Lahore", Status: models.DeliveryPending,
	}); err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}

	s := &server{
		store:   store,
		company: "A.T Commodities",
		now:     func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) },
	}
	srv := httptest.NewServer(s.routes(Options{Store: store, JWT: jwt}))
	t.Cleanup(srv.Close)

	return &fixture{store: store, server: srv, invoiceID: inv.ID, clientID: niazi.ID}
}

func (f *fixture) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.server.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}

func TestDownloads(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name        string
		path        string
		wantFile    string
		wantRows    int
		wantContain string
	}{
		{"attendance daily default", "/downloads/attendance", "attendance_daily_2026-03-14.csv", 2, "Not checked out"},
		{"attendance other day", "/downloads/attendance?date=2026-03-13", "attendance_daily_2026-03-13.csv", 1, "Employee Name"},
		{"attendance monthly", "/downloads/attendance?type=monthly", "attendance_monthly_2026-03-01_to_2026-03-14.csv", 2, "office"},
		{"invoices all", "/downloads/invoices", "invoices_all_2026-03-01_to_2026-03-14.csv", 2, "400000.00"},
		{"deliveries daily", "/downloads/deliveries?date=2026-03-14", "deliveries_daily_2026-03-14.csv", 2, "LES-1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.get(t, tt.path, "")
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, tt.wantFile) {
				t.Errorf("Content-Disposition = %q, want %s", cd, tt.wantFile)
			}
			body := readBody(t, resp)
			rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
			if err != nil {
				t.Fatalf("not CSV: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(rows), tt.wantRows)
			}
			if !strings.Contains(string(body), tt.wantContain) {
				t.Errorf("body missing %q:\n%s", tt.wantContain, body)
			}
		})
	}
}

func TestDownloads_InvoicesByClient(t *testing.T) {
	f := newFixture(t, nil)

	resp := f.get(t, "/downloads/invoices?client="+f.clientID+"&format=xlsx", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "invoices_Niazi_Bricks_2026-03-01_to_2026-03-14.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(readBody(t, resp)))
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	defer wb.Close()
	rows, _ := wb.GetRows("Invoices")
	if len(rows) != 2 || rows[1][0] != "ATC-001" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestDownloads_Errors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		path string
		want int
	}{
		{"/downloads/attendance?format=pdf", http.StatusBadRequest},
		{"/downloads/attendance?type=weekly", http.StatusBadRequest},
		{"/downloads/deliveries?type=monthly&start=2026-03-10&end=2026-03-01", http.StatusBadRequest},
		{"/downloads/invoices?client=missing", http.StatusNotFound},
		{"/downloads/payroll", http.StatusNotFound},
	}
	for _, tt := range tests {
		if resp := f.get(t, tt.path, ""); resp.StatusCode != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestInvoicePDF(t *testing.T) {
	f := newFixture(t, nil)

	resp := f.get(t, "/invoices/"+f.invoiceID+"/pdf", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "Invoice_ATC-001.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := readBody(t, resp); !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}

	if resp := f.get(t, "/invoices/missing/pdf", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing invoice status = %d, want 404", resp.StatusCode)
	}
}

func TestDownloads_RequireToken(t *testing.T) {
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	f := newFixture(t, jwt)

	if resp := f.get(t, "/downloads/deliveries", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("without token status = %d, want 401", resp.StatusCode)
	}

	token, err := jwt.Generate(models.NewOperator("accounts@atcommodities.com", "Aisha", "x"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp := f.get(t, "/downloads/deliveries", token); resp.StatusCode != http.StatusOK {
		t.Errorf("with token status = %d, want 200", resp.StatusCode)
	}

	// Health and metrics stay open.
	if resp := f.get(t, "/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}
	resp := f.get(t, "/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics status = %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(string(body), "erp_export_total") {
		t.Errorf("/metrics missing export counter")
	}
}

func TestWriteAttachment_Filename(t *testing.T) {
	tests := []string{
		"Invoice_ATC-001.pdf",
		`Invoice_ATC "7".pdf`,
		`Invoice_back\slash.pdf`,
		"invoices_Café_Coal_2026-03.csv",
	}
	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeAttachment(rec, filename, "application/pdf", []byte("x"))

			disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
			if err != nil {
				t.Fatalf("Content-Disposition %q does not parse: %v", rec.Header().Get("Content-Disposition"), err)
			}
			if disposition != "attachment" || params["filename"] != filename {
				t.Errorf("got %s filename %q, want attachment filename %q", disposition, params["filename"], filename)
			}
		})
	}
}
