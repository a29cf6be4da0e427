// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/atcommodities/erp/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness rule,
	// such as a duplicate invoice number.
	ErrConflict = errors.New("already exists")

	// ErrAlreadyCheckedOut is returned when a check-out targets a record
	// that already has one.
	ErrAlreadyCheckedOut = errors.New("already checked out")
)

// Store defines the interface for record storage operations.
// This abstraction keeps the service layer independent of the backend.
type Store interface {
	DirectoryStore
	AttendanceStore
	InvoiceStore
	DeliveryStore
	OperatorStore

	// Stats returns dashboard counters; today is "2006-01-02".
	Stats(ctx context.Context, today string) (*models.DashboardStats, error)

	// Close releases any resources held by the store.
	Close() error
}

// DirectoryStore holds employees and clients.
type DirectoryStore interface {
	CreateEmployee(ctx context.Context, e *models.Employee) error
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)

	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
}

// AttendanceStore holds daily attendance records.
type AttendanceStore interface {
	// CreateAttendance persists a check-in. The record ID is populated by the store.
	// Returns ErrConflict if the employee already has a record for that date.
	CreateAttendance(ctx context.Context, r *models.AttendanceRecord) error

	GetAttendance(ctx context.Context, id string) (*models.AttendanceRecord, error)

	// ListAttendanceByDate returns the day's records, latest check-in first.
	ListAttendanceByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error)

	// ListAttendanceBetween returns records with start <= date <= end.
	ListAttendanceBetween(ctx context.Context, start, end string) ([]*models.AttendanceRecord, error)

	// CheckOut sets the check-out time and worked hours on an open record.
	// Returns ErrAlreadyCheckedOut if the record is already closed.
	CheckOut(ctx context.Context, id, checkOut string, totalHours float64) error
}

// InvoiceStore holds invoices and their items.
type InvoiceStore interface {
	// CreateInvoice persists an invoice with its items in one transaction.
	// Returns ErrConflict on a duplicate invoice number.
	CreateInvoice(ctx context.Context, inv *models.Invoice) error

	// GetInvoice retrieves an invoice including its items.
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)

	// ListInvoices returns invoices newest first, without items.
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)

	// ListInvoicesBetween returns invoices dated start..end, optionally for
	// one client (empty clientID means all clients), without items.
	ListInvoicesBetween(ctx context.Context, start, end, clientID string) ([]*models.Invoice, error)

	UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id string) error
}

// DeliveryStore holds the delivery log.
type DeliveryStore interface {
	CreateDelivery(ctx context.Context, d *models.Delivery) error
	GetDelivery(ctx context.Context, id string) (*models.Delivery, error)

	// ListDeliveries returns all deliveries, latest first.
	ListDeliveries(ctx context.Context) ([]*models.Delivery, error)
	ListDeliveriesBetween(ctx context.Context, start, end string) ([]*models.Delivery, error)

	UpdateDeliveryStatus(ctx context.Context, id string, status models.DeliveryStatus) error
	DeleteDelivery(ctx context.Context, id string) error
}

// OperatorStore holds back-office login accounts.
type OperatorStore interface {
	CreateOperator(ctx context.Context, op *models.Operator) error

	// GetOperatorByEmail returns nil, nil when no operator has that email.
	GetOperatorByEmail(ctx context.Context, email string) (*models.Operator, error)
	GetOperatorByID(ctx context.Context, id string) (*models.Operator, error)
}
