package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

// Pending lab work is identified by this type/status pair.
const (
	labTestType    = "Lab Test"
	labTestPending = model.AppointmentStatusScheduled
)

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	logger       *logger.Logger
}

func NewService(appointments repository.AppointmentRepository, patients repository.PatientRepository, logger *logger.Logger) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		logger:       logger,
	}
}

// TodayAppointments returns the bookings scheduled inside today's
// [midnight, midnight+24h) window, wrapped with their count.
func (s *Service) TodayAppointments(ctx context.Context, now time.Time) (*model.TodayAppointments, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	before := from.Add(24 * time.Hour)

	appointments, err := s.appointments.List(ctx, &model.AppointmentFilters{
		ScheduledFrom:   &from,
		ScheduledBefore: &before,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load today's appointments: %w", err)
	}

	items := make([]*model.AppointmentListItem, 0, len(appointments))
	for _, apt := range appointments {
		items = append(items, &model.AppointmentListItem{
			ID:                   apt.ID,
			Name:                 apt.Name,
			ScheduledOn:          apt.ScheduledOn,
			Status:               apt.Status,
			ClientName:           apt.ClientName,
			AssignedEmployeeName: apt.AssignedEmployeeName,
			Type:                 apt.Type,
		})
	}

	return &model.TodayAppointments{
		Date:              from,
		TotalAppointments: len(items),
		Appointments:      items,
	}, nil
}

func (s *Service) TotalClients(ctx context.Context) (int, error) {
	count, err := s.patients.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (s *Service) TotalAppointments(ctx context.Context) (int, error) {
	count, err := s.appointments.CountByTypeAndStatus(ctx, "", "")
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// PendingLabTests counts lab-test bookings still in the scheduled state.
func (s *Service) PendingLabTests(ctx context.Context) (int, error) {
	count, err := s.appointments.CountByTypeAndStatus(ctx, labTestType, labTestPending)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending lab tests: %w", err)
	}
	return count, nil
}
