package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/validator"
)

type Service struct {
	repo      repository.PatientRepository
	employees repository.EmployeeRepository
	validate  *validator.Validator
	logger    *logger.Logger
}

func NewService(repo repository.PatientRepository, employees repository.EmployeeRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Create registers a new patient. The medical record number must be
// unique across all patients, active or not.
func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.PatientDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	exists, err := s.repo.ExistsByMRN(ctx, req.MedicalRecordNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check medical record number: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict(
			fmt.Sprintf("medical record number %q is already registered", req.MedicalRecordNumber), nil)
	}

	patient := &model.Patient{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Gender:              req.Gender,
		DateOfBirth:         req.DateOfBirth,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		City:                req.City,
		ZipCode:             req.ZipCode,
		Country:             req.Country,
		MedicalRecordNumber: req.MedicalRecordNumber,
		IsSubscribed:        req.IsSubscribed,
		IsActive:            true,
	}
	if req.Phone2 != "" {
		patient.Phone2 = &req.Phone2
	}
	if req.Address2 != "" {
		patient.Address2 = &req.Address2
	}
	if req.LastAppointmentDate != nil {
		patient.LastAppointmentDate = *req.LastAppointmentDate
	}
	s.stampAudit(ctx, patient)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	s.logger.Info("patient created", "patient_id", patient.ID)

	return toDetail(patient), nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.PatientDetail, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(patient), nil
}

// List returns all active patients, ordered by name.
func (s *Service) List(ctx context.Context) ([]*model.PatientListItem, error) {
	patients, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	items := make([]*model.PatientListItem, 0, len(patients))
	for _, p := range patients {
		items = append(items, &model.PatientListItem{
			ID:                  p.ID,
			FirstName:           p.FirstName,
			LastName:            p.LastName,
			FullName:            p.FullName(),
			Gender:              p.Gender,
			DateOfBirth:         p.DateOfBirth,
			Email:               p.Email,
			Phone:               p.Phone,
			LastAppointmentDate: p.LastAppointmentDate,
			MedicalRecordNumber: p.MedicalRecordNumber,
			IsActive:            p.IsActive,
		})
	}
	return items, nil
}

// Search matches the term case-insensitively against name, email and
// medical record number. A blank term returns an empty result.
func (s *Service) Search(ctx context.Context, term string) ([]*model.PatientSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.PatientSearchResult{}, nil
	}

	patients, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	results := make([]*model.PatientSearchResult, 0, len(patients))
	for _, p := range patients {
		results = append(results, &model.PatientSearchResult{
			ID:                  p.ID,
			FirstName:           p.FirstName,
			LastName:            p.LastName,
			Email:               p.Email,
			MedicalRecordNumber: p.MedicalRecordNumber,
		})
	}
	return results, nil
}

// Update applies a partial update with the same non-empty semantics as
// the appointment path. Changing the medical record number re-runs the
// uniqueness check.
func (s *Service) Update(ctx context.Context, id int, req *model.UpdatePatientRequest) (*model.PatientDetail, error) {
	if req.ID != id {
		return nil, apperrors.Validation("id mismatch between route and body", nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MedicalRecordNumber != "" && req.MedicalRecordNumber != patient.MedicalRecordNumber {
		exists, err := s.repo.ExistsByMRN(ctx, req.MedicalRecordNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check medical record number: %w", err)
		}
		if exists {
			return nil, apperrors.Conflict(
				fmt.Sprintf("medical record number %q is already registered", req.MedicalRecordNumber), nil)
		}
		patient.MedicalRecordNumber = req.MedicalRecordNumber
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Phone2 != nil {
		patient.Phone2 = req.Phone2
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Address2 != nil {
		patient.Address2 = req.Address2
	}
	if req.City != "" {
		patient.City = req.City
	}
	if req.ZipCode != "" {
		patient.ZipCode = req.ZipCode
	}
	if req.Country != "" {
		patient.Country = req.Country
	}
	if req.LastAppointmentDate != nil {
		patient.LastAppointmentDate = *req.LastAppointmentDate
	}
	if req.IsSubscribed != nil {
		patient.IsSubscribed = *req.IsSubscribed
	}
	if req.IsActive != nil {
		patient.IsActive = *req.IsActive
	}

	now := time.Now()
	patient.UpdatedOn = &now
	s.stampUpdater(ctx, patient)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	s.logger.Info("patient updated", "patient_id", patient.ID)

	return toDetail(patient), nil
}

// Deactivate soft-deletes the patient. It returns false, without error,
// when the id does not exist.
func (s *Service) Deactivate(ctx context.Context, id int) (bool, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !patient.IsActive {
		return true, nil
	}

	patient.IsActive = false
	now := time.Now()
	patient.UpdatedOn = &now
	s.stampUpdater(ctx, patient)

	if err := s.repo.Update(ctx, patient); err != nil {
		return false, err
	}
	s.logger.Info("patient deactivated", "patient_id", id)
	return true, nil
}

// stampAudit records the acting employee on new rows. There is no
// authenticated principal on this path, so the first active employee
// stands in; a missing one leaves the stamp zero.
func (s *Service) stampAudit(ctx context.Context, patient *model.Patient) {
	if id, err := s.employees.FirstActiveID(ctx); err == nil {
		patient.CreatedBy = id
		patient.UpdatedBy = id
	}
}

func (s *Service) stampUpdater(ctx context.Context, patient *model.Patient) {
	if id, err := s.employees.FirstActiveID(ctx); err == nil {
		patient.UpdatedBy = id
	}
}

func toDetail(p *model.Patient) *model.PatientDetail {
	return &model.PatientDetail{
		ID:                  p.ID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		FullName:            p.FullName(),
		Gender:              p.Gender,
		DateOfBirth:         p.DateOfBirth,
		Email:               p.Email,
		Phone:               p.Phone,
		Phone2:              p.Phone2,
		Address:             p.Address,
		Address2:            p.Address2,
		City:                p.City,
		ZipCode:             p.ZipCode,
		Country:             p.Country,
		MedicalRecordNumber: p.MedicalRecordNumber,
		LastAppointmentDate: p.LastAppointmentDate,
		IsSubscribed:        p.IsSubscribed,
		IsActive:            p.IsActive,
	}
}
