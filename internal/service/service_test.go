package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/storage/sqlite"
)

type testServer struct {
	url        string
	store      *sqlite.SQLiteStore
	invoices   *InvoiceService
	attendance *AttendanceService
	directory  *DirectoryService
}

// setupTestServer serves every record-keeping service over a fresh database.
func setupTestServer(t *testing.T, opts ...connect.HandlerOption) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ts := &testServer{
		store:      store,
		invoices:   NewInvoiceService(store),
		attendance: NewAttendanceService(store),
		directory:  NewDirectoryService(store),
	}

	mux := http.NewServeMux()
	mux.Handle(NewInvoiceServiceHandler(ts.invoices, opts...))
	mux.Handle(NewAttendanceServiceHandler(ts.attendance, opts...))
	mux.Handle(NewDeliveryServiceHandler(NewDeliveryService(store), opts...))
	mux.Handle(NewDirectoryServiceHandler(ts.directory, opts...))

	server := httptest.NewServer(mux)
	ts.url = server.URL

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return ts
}

// setClock pins "now" for every service that reads it.
func (ts *testServer) setClock(at time.Time) {
	now := func() time.Time { return at }
	ts.invoices.now = now
	ts.attendance.now = now
	ts.directory.now = now
}

func call[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](http.DefaultClient, baseURL+procedure, CodecOption())
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func mustCall[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) *Res {
	t.Helper()
	res, err := call[Req, Res](t, baseURL, procedure, req)
	if err != nil {
		t.Fatalf("%s failed: %v", procedure, err)
	}
	return res
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("code = %v, want %v (err: %v)", got, code, err)
	}
}

func clientID(t *testing.T, ts *testServer, name string) string {
	t.Helper()
	resp := mustCall[ListClientsRequest, ListClientsResponse](t, ts.url, ListClientsProcedure, &ListClientsRequest{})
	for _, c := range resp.Clients {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("client %q not seeded", name)
	return ""
}

func employeeID(t *testing.T, ts *testServer, name string) string {
	t.Helper()
	resp := mustCall[ListEmployeesRequest, ListEmployeesResponse](t, ts.url, ListEmployeesProcedure, &ListEmployeesRequest{})
	for _, e := range resp.Employees {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("employee %q not seeded", name)
	return ""
}
