package service

import (
	"testing"
	"time"
)

func TestDirectory(t *testing.T) {
	ts := setupTestServer(t)
	ts.setClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local))

	employees := mustCall[ListEmployeesRequest, ListEmployeesResponse](t, ts.url, ListEmployeesProcedure, &ListEmployeesRequest{})
	if len(employees.Employees) != 5 {
		t.Errorf("expected 5 seeded employees, got %d", len(employees.Employees))
	}
	clients := mustCall[ListClientsRequest, ListClientsResponse](t, ts.url, ListClientsProcedure, &ListClientsRequest{})
	if len(clients.Clients) != 2 {
		t.Errorf("expected 2 seeded clients, got %d", len(clients.Clients))
	}

	mustCall[CheckInRequest, CheckInResponse](t, ts.url, CheckInProcedure, &CheckInRequest{
		EmployeeID:   employees.Employees[0].ID,
		WorkLocation: "office",
	})
	mustCall[CreateDeliveryRequest, CreateDeliveryResponse](t, ts.url, CreateDeliveryProcedure, &CreateDeliveryRequest{
		Delivery: Delivery{VehicleNumber: "LES-1", DriverName: "Rashid", Date: "2026-03-14", Time: "07:00", Destination: "Lahore"},
	})

	dash := mustCall[GetDashboardRequest, GetDashboardResponse](t, ts.url, GetDashboardProcedure, &GetDashboardRequest{})
	if dash.TotalEmployees != 5 || dash.TodayAttendance != 1 || dash.ActiveDeliveries != 1 || dash.TotalInvoices != 0 {
		t.Errorf("unexpected dashboard: %+v", dash)
	}
	if dash.StorageKB <= 0 {
		t.Errorf("StorageKB = %d, want > 0", dash.StorageKB)
	}
}
