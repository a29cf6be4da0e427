package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/storage"
)

// DirectoryService serves the employee and client lists and the dashboard.
type DirectoryService struct {
	store storage.Store
	now   func() time.Time
}

// NewDirectoryService creates a new DirectoryService with the given storage backend.
func NewDirectoryService(store storage.Store) *DirectoryService {
	return &DirectoryService{store: store, now: time.Now}
}

// ListEmployees returns all employees.
func (s *DirectoryService) ListEmployees(ctx context.Context, req *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		slog.Error("ListEmployees failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*Employee, len(employees))
	for i, e := range employees {
		out[i] = &Employee{ID: e.ID, Name: e.Name, Department: e.Department, Email: e.Email}
	}
	return connect.NewResponse(&ListEmployeesResponse{Employees: out}), nil
}

// ListClients returns all clients.
func (s *DirectoryService) ListClients(ctx context.Context, req *connect.Request[ListClientsRequest]) (*connect.Response[ListClientsResponse], error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		slog.Error("ListClients failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*Client, len(clients))
	for i, c := range clients {
		out[i] = &Client{ID: c.ID, Name: c.Name, Contact: c.Contact, Address: c.Address}
	}
	return connect.NewResponse(&ListClientsResponse{Clients: out}), nil
}

// GetDashboard returns the landing page counters for today.
func (s *DirectoryService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	stats, err := s.store.Stats(ctx, s.now().Format(time.DateOnly))
	if err != nil {
		slog.Error("GetDashboard failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetDashboardResponse{
		TotalEmployees:   stats.TotalEmployees,
		TodayAttendance:  stats.TodayAttendance,
		TotalInvoices:    stats.TotalInvoices,
		ActiveDeliveries: stats.ActiveDeliveries,
		StorageKB:        stats.StorageKB,
	}), nil
}
