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

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			parent_id, name, description, notes,
			client_id, client_name, assigned_employee_id, assigned_employee_name,
			prescribed_by, scheduled_on, closed_on, type, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	err := r.db.QueryRowContext(ctx, query,
		appointment.ParentID,
		appointment.Name,
		appointment.Description,
		appointment.Notes,
		appointment.ClientID,
		appointment.ClientName,
		appointment.AssignedEmployeeID,
		appointment.AssignedEmployeeName,
		appointment.PrescribedBy,
		appointment.ScheduledOn,
		appointment.ClosedOn,
		appointment.Type,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int) (*model.Appointment, error) {
	query := `
		SELECT id, parent_id, name, description, notes,
			   client_id, client_name, assigned_employee_id, assigned_employee_name,
			   prescribed_by, scheduled_on, closed_on, type, status,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET parent_id = $1, name = $2, description = $3, notes = $4,
			client_id = $5, client_name = $6,
			assigned_employee_id = $7, assigned_employee_name = $8,
			prescribed_by = $9, scheduled_on = $10, closed_on = $11,
			type = $12, status = $13, updated_at = $14
		WHERE id = $15
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.ParentID,
		appointment.Name,
		appointment.Description,
		appointment.Notes,
		appointment.ClientID,
		appointment.ClientName,
		appointment.AssignedEmployeeID,
		appointment.AssignedEmployeeName,
		appointment.PrescribedBy,
		appointment.ScheduledOn,
		appointment.ClosedOn,
		appointment.Type,
		appointment.Status,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, parent_id, name, description, notes,
			   client_id, client_name, assigned_employee_id, assigned_employee_name,
			   prescribed_by, scheduled_on, closed_on, type, status,
			   created_at, updated_at
		FROM appointments
		WHERE 1=1
	`
	var args []interface{}
	argCount := 1

	if filters != nil {
		if filters.ClientID != nil {
			query += fmt.Sprintf(" AND client_id = $%d", argCount)
			args = append(args, *filters.ClientID)
			argCount++
		}
		if filters.EmployeeID != nil {
			query += fmt.Sprintf(" AND assigned_employee_id = $%d", argCount)
			args = append(args, *filters.EmployeeID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.ScheduledFrom != nil {
			query += fmt.Sprintf(" AND scheduled_on >= $%d", argCount)
			args = append(args, *filters.ScheduledFrom)
			argCount++
		}
		if filters.ScheduledTo != nil {
			query += fmt.Sprintf(" AND scheduled_on <= $%d", argCount)
			args = append(args, *filters.ScheduledTo)
			argCount++
		}
		if filters.ScheduledBefore != nil {
			query += fmt.Sprintf(" AND scheduled_on < $%d", argCount)
			args = append(args, *filters.ScheduledBefore)
			argCount++
		}
	}

	// id breaks scheduled_on ties in insertion order
	query += " ORDER BY scheduled_on ASC, id ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// HasConflict reports whether any non-cancelled appointment for the
// employee is scheduled inside [from, to], bounds included.
func (r *appointmentRepository) HasConflict(ctx context.Context, employeeID int, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE assigned_employee_id = $1
			AND scheduled_on IS NOT NULL
			AND scheduled_on >= $2
			AND scheduled_on <= $3
			AND status != $4
		)
	`
	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, employeeID, from, to, model.AppointmentStatusCancelled)
	if err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

// CountByTypeAndStatus counts appointments matching the given type and
// status; an empty string leaves that dimension unfiltered.
func (r *appointmentRepository) CountByTypeAndStatus(ctx context.Context, appointmentType, status string) (int, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE 1=1`
	var args []interface{}
	argCount := 1

	if appointmentType != "" {
		query += fmt.Sprintf(" AND type = $%d", argCount)
		args = append(args, appointmentType)
		argCount++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
