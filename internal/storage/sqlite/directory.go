package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atcommodities/erp/internal/models"
)

// CreateEmployee inserts a new employee.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, e *models.Employee) error {
	if e.ID == "" {
		e.ID = newID()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, department, email) VALUES (?, ?, ?, ?)",
		e.ID, e.Name, e.Department, e.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e := &models.Employee{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, department, email FROM employees WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Name, &e.Department, &e.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("employee", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ListEmployees returns all employees ordered by name.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, department, email FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e := &models.Employee{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// CreateClient inserts a new client.
func (s *SQLiteStore) CreateClient(ctx context.Context, c *models.Client) error {
	if c.ID == "" {
		c.ID = newID()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO clients (id, name, contact, address) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Contact, c.Address,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// GetClient retrieves a client by ID.
func (s *SQLiteStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	c := &models.Client{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, contact, address FROM clients WHERE id = ?",
		id,
	).Scan(&c.ID, &c.Name, &c.Contact, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("client", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// ListClients returns all clients ordered by name.
func (s *SQLiteStore) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, contact, address FROM clients ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c := &models.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Address); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}
