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

const patientColumns = `
	id, first_name, last_name, gender, date_of_birth, email,
	address, address2, city, zip_code, country, phone, phone2,
	medical_record_number, last_appointment_date, is_subscribed, is_active,
	created_by, updated_by, created_on, updated_on
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO clients (
			first_name, last_name, gender, date_of_birth, email,
			address, address2, city, zip_code, country, phone, phone2,
			medical_record_number, last_appointment_date, is_subscribed, is_active,
			created_by, updated_by, created_on, updated_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Gender,
		patient.DateOfBirth,
		patient.Email,
		patient.Address,
		patient.Address2,
		patient.City,
		patient.ZipCode,
		patient.Country,
		patient.Phone,
		patient.Phone2,
		patient.MedicalRecordNumber,
		patient.LastAppointmentDate,
		patient.IsSubscribed,
		patient.IsActive,
		patient.CreatedBy,
		patient.UpdatedBy,
		patient.CreatedOn,
		patient.UpdatedOn,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM clients WHERE id = $1`

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, gender = $3, date_of_birth = $4,
			email = $5, address = $6, address2 = $7, city = $8, zip_code = $9,
			country = $10, phone = $11, phone2 = $12, medical_record_number = $13,
			last_appointment_date = $14, is_subscribed = $15, is_active = $16,
			updated_by = $17, updated_on = $18
		WHERE id = $19
	`
	now := time.Now()
	patient.UpdatedOn = &now

	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Gender,
		patient.DateOfBirth,
		patient.Email,
		patient.Address,
		patient.Address2,
		patient.City,
		patient.ZipCode,
		patient.Country,
		patient.Phone,
		patient.Phone2,
		patient.MedicalRecordNumber,
		patient.LastAppointmentDate,
		patient.IsSubscribed,
		patient.IsActive,
		patient.UpdatedBy,
		patient.UpdatedOn,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}

	return nil
}

func (r *patientRepository) ListActive(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM clients WHERE is_active = true ORDER BY last_name ASC, first_name ASC`

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, term string) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM clients
		WHERE is_active = true
		AND (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR medical_record_number ILIKE $1)
		ORDER BY last_name ASC, first_name ASC
	`
	pattern := "%" + term + "%"

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ExistsByMRN(ctx context.Context, mrn string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE medical_record_number = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, mrn)
	if err != nil {
		return false, fmt.Errorf("failed to check medical record number: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM clients`)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}
