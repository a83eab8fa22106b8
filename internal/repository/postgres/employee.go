package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

const employeeColumns = `
	id, first_name, last_name, gender, email, phone, address,
	position, department, hire_date, is_active,
	created_by, updated_by, created_on, updated_on
`

func (r *employeeRepository) Get(ctx context.Context, id int) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("employee", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, gender = $3, email = $4,
			phone = $5, address = $6, position = $7, department = $8,
			hire_date = $9, is_active = $10, updated_by = $11, updated_on = $12
		WHERE id = $13
	`
	now := time.Now()
	employee.UpdatedOn = &now

	result, err := r.db.ExecContext(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Gender,
		employee.Email,
		employee.Phone,
		employee.Address,
		employee.Position,
		employee.Department,
		employee.HireDate,
		employee.IsActive,
		employee.UpdatedBy,
		employee.UpdatedOn,
		employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("employee", nil)
	}

	return nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = true ORDER BY last_name ASC, first_name ASC`

	var employees []*model.Employee
	err := r.db.SelectContext(ctx, &employees, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) ListActiveByPosition(ctx context.Context, position int) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = true AND position = $1 ORDER BY last_name ASC, first_name ASC`

	var employees []*model.Employee
	err := r.db.SelectContext(ctx, &employees, query, position)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by position: %w", err)
	}
	return employees, nil
}

// FirstActiveID returns the lowest active employee id, used to stamp audit
// fields when no authenticated user is in play.
func (r *employeeRepository) FirstActiveID(ctx context.Context) (int, error) {
	query := `SELECT id FROM employees WHERE is_active = true ORDER BY id ASC LIMIT 1`

	var id int
	err := r.db.GetContext(ctx, &id, query)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.NotFound("active employee", err)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get default employee: %w", err)
	}
	return id, nil
}
