package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atcommodities/erp/internal/models"
)

const deliveryColumns = "id, vehicle_number, driver_name, delivery_date, delivery_time, destination, load_details, status"

// CreateDelivery persists a new delivery.
func (s *SQLiteStore) CreateDelivery(ctx context.Context, d *models.Delivery) error {
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Status == "" {
		d.Status = models.DeliveryPending
	}

	var load interface{}
	if d.LoadDetails != "" {
		load = d.LoadDetails
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deliveries (`+deliveryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.VehicleNumber, d.DriverName, d.Date, d.Time, d.Destination, load, string(d.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}
	return nil
}

// GetDelivery retrieves a delivery by ID.
func (s *SQLiteStore) GetDelivery(ctx context.Context, id string) (*models.Delivery, error) {
	d, err := scanDelivery(s.db.QueryRowContext(ctx,
		"SELECT "+deliveryColumns+" FROM deliveries WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("delivery", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	return d, nil
}

// ListDeliveries returns all deliveries, latest first.
func (s *SQLiteStore) ListDeliveries(ctx context.Context) ([]*models.Delivery, error) {
	return s.queryDeliveries(ctx,
		"SELECT "+deliveryColumns+" FROM deliveries ORDER BY delivery_date DESC, delivery_time DESC",
	)
}

// ListDeliveriesBetween returns deliveries dated start..end inclusive.
func (s *SQLiteStore) ListDeliveriesBetween(ctx context.Context, start, end string) ([]*models.Delivery, error) {
	return s.queryDeliveries(ctx,
		"SELECT "+deliveryColumns+" FROM deliveries WHERE delivery_date BETWEEN ? AND ? ORDER BY delivery_date, delivery_time",
		start, end,
	)
}

// UpdateDeliveryStatus changes the status of a delivery.
func (s *SQLiteStore) UpdateDeliveryStatus(ctx context.Context, id string, status models.DeliveryStatus) error {
	res, err := s.db.ExecContext(ctx, "UPDATE deliveries SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %w", err)
	}
	return expectOneRow(res, "delivery", id)
}

// DeleteDelivery removes a delivery.
func (s *SQLiteStore) DeleteDelivery(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM deliveries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery: %w", err)
	}
	return expectOneRow(res, "delivery", id)
}

func (s *SQLiteStore) queryDeliveries(ctx context.Context, query string, args ...interface{}) ([]*models.Delivery, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deliveries: %w", err)
	}
	return deliveries, nil
}

func scanDelivery(row rowScanner) (*models.Delivery, error) {
	d := &models.Delivery{}
	var load sql.NullString
	var status string
	if err := row.Scan(&d.ID, &d.VehicleNumber, &d.DriverName, &d.Date, &d.Time,
		&d.Destination, &load, &status); err != nil {
		return nil, err
	}
	if load.Valid {
		d.LoadDetails = load.String
	}
	d.Status = models.DeliveryStatus(status)
	return d, nil
}
