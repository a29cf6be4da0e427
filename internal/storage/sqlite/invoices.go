package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

const invoiceColumns = `id, invoice_number, client_id, client_name, date, tax_percent, discount_percent,
	subtotal, tax, discount, total, status, created_at`

// CreateInvoice persists a new invoice and its items in one transaction.
func (s *SQLiteStore) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	if inv.ID == "" {
		inv.ID = newID()
	}
	if inv.CreatedAt == 0 {
		inv.CreatedAt = time.Now().Unix()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Number, inv.ClientID, inv.ClientName, inv.Date, inv.TaxPercent, inv.DiscountPercent,
		inv.Subtotal, inv.Tax, inv.Discount, inv.Total, string(inv.Status), inv.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("invoice number %s: %w", inv.Number, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		if item.ID == "" {
			item.ID = newID()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, inv.ID, i, item.Description, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by ID, including its items in entry order.
func (s *SQLiteStore) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("invoice", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, quantity, unit_price, total
		 FROM invoice_items WHERE invoice_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}

	return inv, nil
}

// ListInvoices returns all invoices, newest first. Items are not loaded.
func (s *SQLiteStore) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.queryInvoices(ctx,
		"SELECT "+invoiceColumns+" FROM invoices ORDER BY date DESC, created_at DESC",
	)
}

// ListInvoicesBetween returns invoices dated start..end, optionally for one client.
func (s *SQLiteStore) ListInvoicesBetween(ctx context.Context, start, end, clientID string) ([]*models.Invoice, error) {
	query := "SELECT " + invoiceColumns + " FROM invoices WHERE date BETWEEN ? AND ?"
	args := []interface{}{start, end}
	if clientID != "" {
		query += " AND client_id = ?"
		args = append(args, clientID)
	}
	query += " ORDER BY date, invoice_number"
	return s.queryInvoices(ctx, query, args...)
}

// UpdateInvoiceStatus changes the status of an invoice.
func (s *SQLiteStore) UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	res, err := s.db.ExecContext(ctx, "UPDATE invoices SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	return expectOneRow(res, "invoice", id)
}

// DeleteInvoice removes an invoice; its items are removed by cascade.
func (s *SQLiteStore) DeleteInvoice(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return expectOneRow(res, "invoice", id)
}

func (s *SQLiteStore) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]*models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}
	return invoices, nil
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var status string
	if err := row.Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.ClientName, &inv.Date,
		&inv.TaxPercent, &inv.DiscountPercent, &inv.Subtotal, &inv.Tax, &inv.Discount, &inv.Total,
		&status, &inv.CreatedAt); err != nil {
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)
	return inv, nil
}
