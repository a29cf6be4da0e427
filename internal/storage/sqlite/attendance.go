package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

const attendanceColumns = "id, employee_id, employee_name, date, check_in, check_out, work_location, total_hours"

// CreateAttendance persists a check-in record.
func (s *SQLiteStore) CreateAttendance(ctx context.Context, r *models.AttendanceRecord) error {
	if r.ID == "" {
		r.ID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (id, employee_id, employee_name, date, check_in, work_location)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.EmployeeID, r.EmployeeName, r.Date, r.CheckIn, string(r.WorkLocation),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("attendance for employee %s on %s: %w", r.EmployeeID, r.Date, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

// GetAttendance retrieves an attendance record by ID.
func (s *SQLiteStore) GetAttendance(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	r, err := scanAttendance(s.db.QueryRowContext(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("attendance record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return r, nil
}

// ListAttendanceByDate returns the records for one day, latest check-in first.
func (s *SQLiteStore) ListAttendanceByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	return s.queryAttendance(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE date = ? ORDER BY check_in DESC",
		date,
	)
}

// ListAttendanceBetween returns the records dated start..end inclusive.
func (s *SQLiteStore) ListAttendanceBetween(ctx context.Context, start, end string) ([]*models.AttendanceRecord, error) {
	return s.queryAttendance(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE date BETWEEN ? AND ? ORDER BY date, employee_name",
		start, end,
	)
}

// CheckOut records the check-out time and the hours worked. Only an open
// record is updated, so concurrent check-outs cannot overwrite each other.
func (s *SQLiteStore) CheckOut(ctx context.Context, id, checkOut string, totalHours float64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE attendance SET check_out = ?, total_hours = ? WHERE id = ? AND check_out IS NULL",
		checkOut, totalHours, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	existing, err := s.GetAttendance(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("attendance record %s: %w at %s", id, storage.ErrAlreadyCheckedOut, existing.CheckOut)
}

func (s *SQLiteStore) queryAttendance(ctx context.Context, query string, args ...interface{}) ([]*models.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendance(row rowScanner) (*models.AttendanceRecord, error) {
	r := &models.AttendanceRecord{}
	var location string
	var checkOut sql.NullString
	var hours sql.NullFloat64

	if err := row.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.Date, &r.CheckIn,
		&checkOut, &location, &hours); err != nil {
		return nil, err
	}
	r.WorkLocation = models.WorkLocation(location)
	if checkOut.Valid {
		r.CheckOut = checkOut.String
	}
	if hours.Valid {
		r.TotalHours = hours.Float64
	}
	return r, nil
}
