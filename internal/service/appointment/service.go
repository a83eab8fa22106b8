package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-api/internal/email"
	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/validator"
)

// ConflictWindow is the half-width of the slot-conflict interval: a
// proposed time collides with any non-cancelled booking for the same
// employee within 30 minutes either side, bounds included.
const ConflictWindow = 30 * time.Minute

// Vocabulary supplies the configuration-driven status and type
// allow-lists. An empty list disables validation for that vocabulary.
type Vocabulary interface {
	AppointmentStatuses(ctx context.Context) ([]string, error)
	AppointmentTypes(ctx context.Context) ([]string, error)
}

type Service struct {
	repo      repository.AppointmentRepository
	patients  repository.PatientRepository
	employees repository.EmployeeRepository
	outbox    repository.OutboxRepository
	vocab     Vocabulary
	mailer    email.Service
	validate  *validator.Validator
	logger    *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	patients repository.PatientRepository,
	employees repository.EmployeeRepository,
	outbox repository.OutboxRepository,
	vocab Vocabulary,
	mailer email.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		employees: employees,
		outbox:    outbox,
		vocab:     vocab,
		mailer:    mailer,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Create books a new appointment. The availability check is advisory and
// left to the caller; create itself never blocks on conflicts.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	if _, err := s.patients.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.employees.Get(ctx, req.AssignedEmployeeID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}
	if err := s.checkVocabulary(ctx, status, req.Type); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if _, err := s.repo.Get(ctx, *req.ParentID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("parent appointment not found", err)
			}
			return nil, err
		}
	}

	apt := &model.Appointment{
		ParentID:             req.ParentID,
		Name:                 req.Name,
		Description:          req.Description,
		Notes:                req.Notes,
		ClientID:             req.ClientID,
		ClientName:           req.ClientName,
		AssignedEmployeeID:   req.AssignedEmployeeID,
		AssignedEmployeeName: req.AssignedEmployeeName,
		PrescribedBy:         req.PrescribedBy,
		ScheduledOn:          req.ScheduledOn,
		Type:                 req.Type,
		Status:               status,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	s.logger.Info("appointment created", "appointment_id", apt.ID, "client_id", apt.ClientID)

	detail := s.toDetail(apt)
	s.enrich(ctx, detail)
	s.emitEvent(ctx, model.EventAppointmentCreated, detail)
	s.sendConfirmation(ctx, detail)

	return detail, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.AppointmentDetail, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := s.toDetail(apt)
	s.enrich(ctx, detail)
	return detail, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	details := make([]*model.AppointmentDetail, 0, len(appointments))
	for _, apt := range appointments {
		details = append(details, s.toDetail(apt))
	}
	return details, nil
}

// ListByDate returns the appointments scheduled inside [date, date+24h).
func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*model.AppointmentDetail, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	before := from.Add(24 * time.Hour)

	return s.List(ctx, &model.AppointmentFilters{
		ScheduledFrom:   &from,
		ScheduledBefore: &before,
	})
}

// Update applies a partial update: pointer fields apply when set, string
// fields only when non-empty. A field can therefore never be cleared back
// to empty through this path.
func (s *Service) Update(ctx context.Context, id int, req *model.UpdateAppointmentRequest) (*model.AppointmentDetail, error) {
	if req.ID != id {
		return nil, apperrors.Validation("id mismatch between route and body", nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" && model.TerminalStatus(apt.Status) && req.Status != apt.Status {
		return nil, apperrors.Conflict(
			fmt.Sprintf("appointment is %s and cannot change status", apt.Status), nil)
	}
	if err := s.checkVocabulary(ctx, req.Status, req.Type); err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.patients.Get(ctx, *req.ClientID); err != nil {
			return nil, err
		}
		apt.ClientID = *req.ClientID
	}
	if req.ClientName != "" {
		apt.ClientName = req.ClientName
	}
	if req.AssignedEmployeeID != nil {
		if _, err := s.employees.Get(ctx, *req.AssignedEmployeeID); err != nil {
			return nil, err
		}
		apt.AssignedEmployeeID = *req.AssignedEmployeeID
	}
	if req.AssignedEmployeeName != "" {
		apt.AssignedEmployeeName = req.AssignedEmployeeName
	}
	if req.PrescribedBy != nil {
		apt.PrescribedBy = req.PrescribedBy
	}
	if req.ScheduledOn != nil {
		apt.ScheduledOn = req.ScheduledOn
	}
	if req.Type != "" {
		apt.Type = req.Type
	}
	if req.Status != "" {
		apt.Status = req.Status
	}
	if req.Name != "" {
		apt.Name = req.Name
	}
	if req.Description != "" {
		apt.Description = req.Description
	}
	if req.Notes != "" {
		apt.Notes = req.Notes
	}
	if req.ClosedOn != nil {
		apt.ClosedOn = req.ClosedOn
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, apperrors.Validation("appointment cannot be its own parent", nil)
		}
		if _, err := s.repo.Get(ctx, *req.ParentID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("parent appointment not found", err)
			}
			return nil, err
		}
		apt.ParentID = req.ParentID
	}

	// closedOn tracks terminal status and is never reset
	if model.TerminalStatus(apt.Status) && apt.ClosedOn == nil {
		now := time.Now()
		apt.ClosedOn = &now
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment updated", "appointment_id", apt.ID)

	detail := s.toDetail(apt)
	s.enrich(ctx, detail)
	s.emitEvent(ctx, model.EventAppointmentUpdated, detail)
	return detail, nil
}

// Cancel marks the appointment cancelled and stamps closedOn. It returns
// false, without error, when the id does not exist.
func (s *Service) Cancel(ctx context.Context, id int) (bool, error) {
	return s.close(ctx, id, model.AppointmentStatusCancelled, model.EventAppointmentCancelled)
}

// Complete marks the appointment completed, symmetric to Cancel.
func (s *Service) Complete(ctx context.Context, id int) (bool, error) {
	return s.close(ctx, id, model.AppointmentStatusCompleted, model.EventAppointmentCompleted)
}

func (s *Service) close(ctx context.Context, id int, status, eventType string) (bool, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if model.TerminalStatus(apt.Status) {
		return false, apperrors.Conflict(
			fmt.Sprintf("appointment is already %s", apt.Status), nil)
	}

	now := time.Now()
	apt.Status = status
	apt.ClosedOn = &now

	if err := s.repo.Update(ctx, apt); err != nil {
		return false, err
	}
	s.logger.Info("appointment closed", "appointment_id", id, "status", status)

	s.emitEvent(ctx, eventType, s.toDetail(apt))
	return true, nil
}

// IsTimeSlotAvailable checks the ±30 minute conflict window around the
// proposed time. Advisory only: nothing serializes this check with a
// subsequent create.
func (s *Service) IsTimeSlotAvailable(ctx context.Context, employeeID int, scheduledOn time.Time) (bool, error) {
	hasConflict, err := s.repo.HasConflict(ctx, employeeID,
		scheduledOn.Add(-ConflictWindow), scheduledOn.Add(ConflictWindow))
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return !hasConflict, nil
}

// Doctors lists the active practitioners a booking can be assigned to.
func (s *Service) Doctors(ctx context.Context) ([]*model.Doctor, error) {
	employees, err := s.employees.ListActiveByPosition(ctx, model.PositionDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	doctors := make([]*model.Doctor, 0, len(employees))
	for _, e := range employees {
		doctors = append(doctors, &model.Doctor{
			ID:        e.ID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			FullName:  e.FullName(),
			Email:     e.Email,
			Phone:     e.Phone,
			IsActive:  e.IsActive,
		})
	}
	return doctors, nil
}

func (s *Service) checkVocabulary(ctx context.Context, status, appointmentType string) error {
	if status != "" {
		allowed, err := s.vocab.AppointmentStatuses(ctx)
		if err != nil {
			return fmt.Errorf("failed to load status vocabulary: %w", err)
		}
		if len(allowed) > 0 && !contains(allowed, status) {
			return apperrors.Validation(fmt.Sprintf("unknown appointment status %q", status), nil)
		}
	}
	if appointmentType != "" {
		allowed, err := s.vocab.AppointmentTypes(ctx)
		if err != nil {
			return fmt.Errorf("failed to load type vocabulary: %w", err)
		}
		if len(allowed) > 0 && !contains(allowed, appointmentType) {
			return apperrors.Validation(fmt.Sprintf("unknown appointment type %q", appointmentType), nil)
		}
	}
	return nil
}

// toDetail maps the stored record one to one; snapshot fields are used as
// stored, never re-joined.
func (s *Service) toDetail(apt *model.Appointment) *model.AppointmentDetail {
	return &model.AppointmentDetail{
		ID:                   apt.ID,
		Name:                 apt.Name,
		Description:          apt.Description,
		ScheduledOn:          apt.ScheduledOn,
		ClosedOn:             apt.ClosedOn,
		Notes:                apt.Notes,
		Type:                 apt.Type,
		Status:               apt.Status,
		ClientID:             apt.ClientID,
		ClientName:           apt.ClientName,
		AssignedEmployeeID:   apt.AssignedEmployeeID,
		AssignedEmployeeName: apt.AssignedEmployeeName,
		PrescribedBy:         apt.PrescribedBy,
		ParentID:             apt.ParentID,
	}
}

// enrich resolves live contact and prescriber details. Lookup failures
// leave the fields empty; they are never propagated.
func (s *Service) enrich(ctx context.Context, detail *model.AppointmentDetail) {
	if client, err := s.patients.Get(ctx, detail.ClientID); err == nil {
		detail.ClientPhone = client.Phone
		detail.ClientEmail = client.Email
	}
	if detail.PrescribedBy != nil {
		if prescriber, err := s.employees.Get(ctx, *detail.PrescribedBy); err == nil {
			detail.PrescribedByName = prescriber.FullName()
		}
	}
	if detail.ParentID != nil {
		if parent, err := s.repo.Get(ctx, *detail.ParentID); err == nil {
			detail.ParentAppointmentName = parent.Name
		}
	}
}

func (s *Service) emitEvent(ctx context.Context, eventType string, detail *model.AppointmentDetail) {
	payload, err := json.Marshal(detail)
	if err != nil {
		s.logger.Error(err, "failed to marshal appointment event", "event_type", eventType)
		return
	}
	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to write outbox event", "event_type", eventType)
	}
}

func (s *Service) sendConfirmation(ctx context.Context, detail *model.AppointmentDetail) {
	if s.mailer == nil || detail.ClientEmail == "" {
		return
	}
	if err := s.mailer.SendAppointmentConfirmation(ctx, detail.ClientEmail, detail); err != nil {
		s.logger.Error(err, "failed to send confirmation email", "appointment_id", detail.ID)
	}
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}
