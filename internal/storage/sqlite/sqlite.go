// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories, runs migrations and seeds the default
// employees and clients when those tables are empty.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps PRAGMA foreign_keys in effect for every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.seed(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var defaultEmployees = []models.Employee{
	{Name: "Ahmad Ali", Department: "Operations", Email: "ahmad@atcommodities.com"},
	{Name: "Fatima Khan", Department: "Sales", Email: "fatima@atcommodities.com"},
	{Name: "Muhammad Hassan", Department: "Logistics", Email: "hassan@atcommodities.com"},
	{Name: "Aisha Malik", Department: "Accounts", Email: "aisha@atcommodities.com"},
	{Name: "Usman Sheikh", Department: "Warehouse", Email: "usman@atcommodities.com"},
}

var defaultClients = []models.Client{
	{Name: "A.L.U International", Contact: "Mr. Adnan Sb", Address: "Industrial Area, Karachi"},
	{Name: "Niazi Bricks", Contact: "Mr. Talha Niazi Sb", Address: "Brick Kiln Area, Lahore"},
}

// seed inserts the default employees and clients into empty tables.
func (s *SQLiteStore) seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees").Scan(&n); err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if n == 0 {
		for _, e := range defaultEmployees {
			if err := s.CreateEmployee(ctx, &e); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		return fmt.Errorf("failed to count clients: %w", err)
	}
	if n == 0 {
		for _, c := range defaultClients {
			if err := s.CreateClient(ctx, &c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns the dashboard counters.
func (s *SQLiteStore) Stats(ctx context.Context, today string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM attendance WHERE date = ?),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM deliveries WHERE status != ?)`,
		today, string(models.DeliveryDelivered),
	).Scan(&stats.TotalEmployees, &stats.TodayAttendance, &stats.TotalInvoices, &stats.ActiveDeliveries)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.StorageKB = info.Size() / 1024
	}
	return stats, nil
}

func newID() string {
	return uuid.New().String()
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFound builds an error wrapping storage.ErrNotFound.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
}

// expectOneRow converts a zero-row update or delete into a not-found error.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}
