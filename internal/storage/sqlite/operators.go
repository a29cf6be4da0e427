package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// CreateOperator inserts a new operator account.
func (s *SQLiteStore) CreateOperator(ctx context.Context, op *models.Operator) error {
	query := `
		INSERT INTO operators (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		op.ID,
		op.Email,
		op.DisplayName,
		op.PasswordHash,
		op.CreatedAt,
		op.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("operator %s: %w", op.Email, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	return nil
}

// GetOperatorByEmail retrieves an operator by email. Returns nil, nil if absent.
func (s *SQLiteStore) GetOperatorByEmail(ctx context.Context, email string) (*models.Operator, error) {
	op, err := s.getOperator(ctx, "email", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator by email: %w", err)
	}
	return op, nil
}

// GetOperatorByID retrieves an operator by ID. Returns nil, nil if absent.
func (s *SQLiteStore) GetOperatorByID(ctx context.Context, id string) (*models.Operator, error) {
	op, err := s.getOperator(ctx, "id", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator by ID: %w", err)
	}
	return op, nil
}

// getOperator looks an operator up by a trusted column name.
func (s *SQLiteStore) getOperator(ctx context.Context, column, value string) (*models.Operator, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM operators
		WHERE ` + column + ` = ?
	`

	op := &models.Operator{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&op.ID,
		&op.Email,
		&op.DisplayName,
		&op.PasswordHash,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return op, nil
}
