package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	items []*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error { return nil }
func (r *fakeAppointmentRepo) Get(_ context.Context, id int) (*model.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error { return nil }
func (r *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var result []*model.Appointment
	for _, apt := range r.items {
		if filters.ScheduledFrom != nil && (apt.ScheduledOn == nil || apt.ScheduledOn.Before(*filters.ScheduledFrom)) {
			continue
		}
		if filters.ScheduledBefore != nil && (apt.ScheduledOn == nil || !apt.ScheduledOn.Before(*filters.ScheduledBefore)) {
			continue
		}
		result = append(result, apt)
	}
	return result, nil
}
func (r *fakeAppointmentRepo) HasConflict(_ context.Context, employeeID int, from, to time.Time) (bool, error) {
	return false, nil
}
func (r *fakeAppointmentRepo) CountByTypeAndStatus(_ context.Context, appointmentType, status string) (int, error) {
	count := 0
	for _, apt := range r.items {
		if appointmentType != "" && apt.Type != appointmentType {
			continue
		}
		if status != "" && apt.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

type fakePatientRepo struct {
	total int
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error          { return nil }
func (r *fakePatientRepo) Get(_ context.Context, id int) (*model.Patient, error)     { return nil, nil }
func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error          { return nil }
func (r *fakePatientRepo) ListActive(_ context.Context) ([]*model.Patient, error)    { return nil, nil }
func (r *fakePatientRepo) Search(_ context.Context, s string) ([]*model.Patient, error) {
	return nil, nil
}
func (r *fakePatientRepo) ExistsByMRN(_ context.Context, mrn string) (bool, error) { return false, nil }
func (r *fakePatientRepo) Count(_ context.Context) (int, error)                    { return r.total, nil }

func ts(t time.Time) *time.Time { return &t }

func TestTodayAppointmentsWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &fakeAppointmentRepo{items: []*model.Appointment{
		{ID: 1, ScheduledOn: ts(midnight), ClientName: "A", Status: "Scheduled"},
		{ID: 2, ScheduledOn: ts(midnight.Add(23*time.Hour + 59*time.Minute)), ClientName: "B", Status: "Scheduled"},
		{ID: 3, ScheduledOn: ts(midnight.Add(-time.Minute)), ClientName: "C", Status: "Scheduled"},
		{ID: 4, ScheduledOn: ts(midnight.Add(24 * time.Hour)), ClientName: "D", Status: "Scheduled"},
	}}
	svc := NewService(repo, &fakePatientRepo{}, logger.NewLogger(nil))

	today, err := svc.TodayAppointments(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, today.TotalAppointments)
	assert.Len(t, today.Appointments, 2)
	assert.True(t, today.Date.Equal(midnight))
}

func TestCounters(t *testing.T) {
	repo := &fakeAppointmentRepo{items: []*model.Appointment{
		{ID: 1, Type: "Lab Test", Status: "Scheduled"},
		{ID: 2, Type: "Lab Test", Status: "Completed"},
		{ID: 3, Type: "Checkup", Status: "Scheduled"},
	}}
	svc := NewService(repo, &fakePatientRepo{total: 12}, logger.NewLogger(nil))
	ctx := context.Background()

	clients, err := svc.TotalClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, clients)

	appointments, err := svc.TotalAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, appointments)

	pending, err := svc.PendingLabTests(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
