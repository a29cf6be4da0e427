package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "erp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "data", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Seed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	employees, err := store.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees failed: %v", err)
	}
	if len(employees) != len(defaultEmployees) {
		t.Errorf("Expected %d seeded employees, got %d", len(defaultEmployees), len(employees))
	}

	clients, err := store.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if len(clients) != len(defaultClients) {
		t.Errorf("Expected %d seeded clients, got %d", len(defaultClients), len(clients))
	}

	// Seeding must not repeat on an existing database.
	if err := store.seed(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	employees, _ = store.ListEmployees(ctx)
	if len(employees) != len(defaultEmployees) {
		t.Errorf("Reseeding duplicated employees: got %d", len(employees))
	}
}

func TestSQLiteStore_Invoices(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	clients, err := store.ListClients(ctx)
	if err != nil || len(clients) == 0 {
		t.Fatalf("ListClients failed: %v", err)
	}
	client := clients[0]

	t.Run("CreateInvoice generates ID and keeps item order", func(t *testing.T) {
		inv := &models.Invoice{
			Number:     "INV-001",
			ClientID:   client.ID,
			ClientName: client.Name,
			Date:       "2025-03-01",
			Items: []models.InvoiceItem{
				{Description: "Coal (LES-1234)", Quantity: 2, UnitPrice: 500, Total: 1000},
				{Description: "Freight", Quantity: 1, UnitPrice: 200, Total: 200},
			},
			TaxPercent:      10,
			DiscountPercent: 5,
			Subtotal:        1200,
			Tax:             120,
			Discount:        60,
			Total:           1260,
		}

		if err := store.CreateInvoice(ctx, inv); err != nil {
			t.Fatalf("CreateInvoice failed: %v", err)
		}
		if inv.ID == "" {
			t.Error("Expected invoice ID to be generated")
		}
		if inv.Status != models.InvoiceDraft {
			t.Errorf("Expected default status draft, got %s", inv.Status)
		}

		got, err := store.GetInvoice(ctx, inv.ID)
		if err != nil {
			t.Fatalf("GetInvoice failed: %v", err)
		}
		if got.Number != "INV-001" || got.Total != 1260 || got.TaxPercent != 10 {
			t.Errorf("Invoice mismatch: %+v", got)
		}
		if len(got.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(got.Items))
		}
		if got.Items[0].Description != "Coal (LES-1234)" || got.Items[1].Description != "Freight" {
			t.Errorf("Items out of order: %+v", got.Items)
		}
	})

	t.Run("duplicate invoice number conflicts", func(t *testing.T) {
		inv := &models.Invoice{Number: "INV-001", ClientID: client.ID, ClientName: client.Name, Date: "2025-03-02"}
		err := store.CreateInvoice(ctx, inv)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("ListInvoicesBetween filters by date and client", func(t *testing.T) {
		other := clients[1]
		for _, inv := range []*models.Invoice{
			{Number: "INV-002", ClientID: other.ID, ClientName: other.Name, Date: "2025-03-15"},
			{Number: "INV-003", ClientID: client.ID, ClientName: client.Name, Date: "2025-04-02"},
		} {
			if err := store.CreateInvoice(ctx, inv); err != nil {
				t.Fatalf("CreateInvoice failed: %v", err)
			}
		}

		march, err := store.ListInvoicesBetween(ctx, "2025-03-01", "2025-03-31", "")
		if err != nil {
			t.Fatalf("ListInvoicesBetween failed: %v", err)
		}
		if len(march) != 2 {
			t.Errorf("Expected 2 March invoices, got %d", len(march))
		}

		forClient, err := store.ListInvoicesBetween(ctx, "2025-03-01", "2025-03-31", other.ID)
		if err != nil {
			t.Fatalf("ListInvoicesBetween failed: %v", err)
		}
		if len(forClient) != 1 || forClient[0].Number != "INV-002" {
			t.Errorf("Expected only INV-002, got %+v", forClient)
		}

		all, err := store.ListInvoices(ctx)
		if err != nil {
			t.Fatalf("ListInvoices failed: %v", err)
		}
		if len(all) != 3 || all[0].Number != "INV-003" {
			t.Errorf("Expected 3 invoices newest first, got %d", len(all))
		}
	})

	t.Run("UpdateInvoiceStatus and DeleteInvoice", func(t *testing.T) {
		all, _ := store.ListInvoices(ctx)
		id := all[0].ID

		if err := store.UpdateInvoiceStatus(ctx, id, models.InvoicePaid); err != nil {
			t.Fatalf("UpdateInvoiceStatus failed: %v", err)
		}
		got, _ := store.GetInvoice(ctx, id)
		if got.Status != models.InvoicePaid {
			t.Errorf("Expected status paid, got %s", got.Status)
		}

		if err := store.DeleteInvoice(ctx, id); err != nil {
			t.Fatalf("DeleteInvoice failed: %v", err)
		}
		if _, err := store.GetInvoice(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteInvoice(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
		}
	})

	t.Run("GetInvoice returns error for nonexistent invoice", func(t *testing.T) {
		_, err := store.GetInvoice(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Attendance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	employees, _ := store.ListEmployees(ctx)
	emp := employees[0]

	rec := &models.AttendanceRecord{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         "2025-03-01",
		CheckIn:      "09:00:00",
		WorkLocation: models.LocationWarehouse,
	}
	if err := store.CreateAttendance(ctx, rec); err != nil {
		t.Fatalf("CreateAttendance failed: %v", err)
	}

	dup := &models.AttendanceRecord{EmployeeID: emp.ID, EmployeeName: emp.Name, Date: "2025-03-01", CheckIn: "10:00:00", WorkLocation: models.LocationOffice}
	if err := store.CreateAttendance(ctx, dup); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Expected ErrConflict for second check-in, got %v", err)
	}

	got, err := store.GetAttendance(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetAttendance failed: %v", err)
	}
	if got.CheckedOut() || got.TotalHours != 0 {
		t.Errorf("Expected open record, got %+v", got)
	}

	if err := store.CheckOut(ctx, rec.ID, "17:30:00", 8.5); err != nil {
		t.Fatalf("CheckOut failed: %v", err)
	}
	got, _ = store.GetAttendance(ctx, rec.ID)
	if got.CheckOut != "17:30:00" || got.TotalHours != 8.5 || got.WorkLocation != models.LocationWarehouse {
		t.Errorf("Checked-out record mismatch: %+v", got)
	}

	if err := store.CheckOut(ctx, rec.ID, "18:00:00", 9); !errors.Is(err, storage.ErrAlreadyCheckedOut) {
		t.Errorf("Expected ErrAlreadyCheckedOut on second check-out, got %v", err)
	}
	got, _ = store.GetAttendance(ctx, rec.ID)
	if got.CheckOut != "17:30:00" || got.TotalHours != 8.5 {
		t.Errorf("Second check-out overwrote the record: %+v", got)
	}

	if err := store.CheckOut(ctx, "nonexistent-id", "17:30:00", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	day, err := store.ListAttendanceByDate(ctx, "2025-03-01")
	if err != nil || len(day) != 1 {
		t.Errorf("ListAttendanceByDate = %d records, err %v", len(day), err)
	}
	month, err := store.ListAttendanceBetween(ctx, "2025-03-01", "2025-03-31")
	if err != nil || len(month) != 1 {
		t.Errorf("ListAttendanceBetween = %d records, err %v", len(month), err)
	}

	stats, err := store.Stats(ctx, "2025-03-01")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TodayAttendance != 1 || stats.TotalEmployees != len(defaultEmployees) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSQLiteStore_ConcurrentCheckOut(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	employees, _ := store.ListEmployees(ctx)
	rec := &models.AttendanceRecord{
		EmployeeID:   employees[0].ID,
		EmployeeName: employees[0].Name,
		Date:         "2025-03-02",
		CheckIn:      "09:00:00",
		WorkLocation: models.LocationOffice,
	}
	if err := store.CreateAttendance(ctx, rec); err != nil {
		t.Fatalf("CreateAttendance failed: %v", err)
	}

	checkOuts := []struct {
		at    string
		hours float64
	}{
		{"17:00:00", 8},
		{"18:00:00", 9},
		{"19:00:00", 10},
	}
	errs := make([]error, len(checkOuts))
	var wg sync.WaitGroup
	for i, c := range checkOuts {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = store.CheckOut(ctx, rec.ID, c.at, c.hours)
		}()
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		switch {
		case err == nil:
			if winner != -1 {
				t.Fatalf("CheckOut %d and %d both succeeded", winner, i)
			}
			winner = i
		case !errors.Is(err, storage.ErrAlreadyCheckedOut):
			t.Errorf("CheckOut %d error = %v, want ErrAlreadyCheckedOut", i, err)
		}
	}
	if winner == -1 {
		t.Fatal("No CheckOut succeeded")
	}

	got, _ := store.GetAttendance(ctx, rec.ID)
	if got.CheckOut != checkOuts[winner].at || got.TotalHours != checkOuts[winner].hours {
		t.Errorf("Stored %s/%v, want the successful check-out %+v", got.CheckOut, got.TotalHours, checkOuts[winner])
	}
}

func TestSQLiteStore_Deliveries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := &models.Delivery{
		VehicleNumber: "LES-1234",
		DriverName:    "Rashid",
		Date:          "2025-03-01",
		Time:          "08:30",
		Destination:   "Brick Kiln Area, Lahore",
	}
	if err := store.CreateDelivery(ctx, d); err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}
	if d.Status != models.DeliveryPending {
		t.Errorf("Expected default status pending, got %s", d.Status)
	}

	stats, _ := store.Stats(ctx, "2025-03-01")
	if stats.ActiveDeliveries != 1 {
		t.Errorf("Expected 1 active delivery, got %d", stats.ActiveDeliveries)
	}

	if err := store.UpdateDeliveryStatus(ctx, d.ID, models.DeliveryDelivered); err != nil {
		t.Fatalf("UpdateDeliveryStatus failed: %v", err)
	}
	got, err := store.GetDelivery(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDelivery failed: %v", err)
	}
	if got.Status != models.DeliveryDelivered || got.LoadDetails != "" {
		t.Errorf("Delivery mismatch: %+v", got)
	}

	stats, _ = store.Stats(ctx, "2025-03-01")
	if stats.ActiveDeliveries != 0 {
		t.Errorf("Expected 0 active deliveries, got %d", stats.ActiveDeliveries)
	}

	between, _ := store.ListDeliveriesBetween(ctx, "2025-02-01", "2025-02-28")
	if len(between) != 0 {
		t.Errorf("Expected no February deliveries, got %d", len(between))
	}

	if err := store.DeleteDelivery(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDelivery failed: %v", err)
	}
	all, _ := store.ListDeliveries(ctx)
	if len(all) != 0 {
		t.Errorf("Expected no deliveries after delete, got %d", len(all))
	}
}

func TestSQLiteStore_Operators(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	op := models.NewOperator("accounts@atcommodities.com", "Accounts", "hash")
	if err := store.CreateOperator(ctx, op); err != nil {
		t.Fatalf("CreateOperator failed: %v", err)
	}
	dup := models.NewOperator("accounts@atcommodities.com", "Other", "hash")
	if err := store.CreateOperator(ctx, dup); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}

	got, err := store.GetOperatorByEmail(ctx, op.Email)
	if err != nil || got == nil || got.ID != op.ID {
		t.Errorf("GetOperatorByEmail = %+v, %v", got, err)
	}
	missing, err := store.GetOperatorByID(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing operator, got %+v, %v", missing, err)
	}
}
