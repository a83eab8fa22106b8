package appointment

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	nextID int
	items  map[int]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: make(map[int]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.nextID++
	apt.ID = r.nextID
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	stored := *apt
	r.items[apt.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id int) (*model.Appointment, error) {
	apt, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	clone := *apt
	return &clone, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.items[apt.ID]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	stored := *apt
	r.items[apt.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var result []*model.Appointment
	for _, apt := range r.items {
		if filters != nil {
			if filters.ClientID != nil && apt.ClientID != *filters.ClientID {
				continue
			}
			if filters.EmployeeID != nil && apt.AssignedEmployeeID != *filters.EmployeeID {
				continue
			}
			if filters.Status != "" && apt.Status != filters.Status {
				continue
			}
			if filters.ScheduledFrom != nil && (apt.ScheduledOn == nil || apt.ScheduledOn.Before(*filters.ScheduledFrom)) {
				continue
			}
			if filters.ScheduledTo != nil && (apt.ScheduledOn == nil || apt.ScheduledOn.After(*filters.ScheduledTo)) {
				continue
			}
			if filters.ScheduledBefore != nil && (apt.ScheduledOn == nil || !apt.ScheduledOn.Before(*filters.ScheduledBefore)) {
				continue
			}
		}
		clone := *apt
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ScheduledOn.Equal(*result[j].ScheduledOn) {
			return result[i].ID < result[j].ID
		}
		return result[i].ScheduledOn.Before(*result[j].ScheduledOn)
	})
	return result, nil
}

func (r *fakeAppointmentRepo) HasConflict(_ context.Context, employeeID int, from, to time.Time) (bool, error) {
	for _, apt := range r.items {
		if apt.AssignedEmployeeID != employeeID || apt.ScheduledOn == nil {
			continue
		}
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		if !apt.ScheduledOn.Before(from) && !apt.ScheduledOn.After(to) {
			return true, nil
		}
	}
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
	items map[int]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) Get(_ context.Context, id int) (*model.Patient, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}
func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) ListActive(_ context.Context) ([]*model.Patient, error) {
	return nil, nil
}
func (r *fakePatientRepo) Search(_ context.Context, term string) ([]*model.Patient, error) {
	return nil, nil
}
func (r *fakePatientRepo) ExistsByMRN(_ context.Context, mrn string) (bool, error) {
	return false, nil
}
func (r *fakePatientRepo) Count(_ context.Context) (int, error) { return len(r.items), nil }

type fakeEmployeeRepo struct {
	items map[int]*model.Employee
}

func (r *fakeEmployeeRepo) Get(_ context.Context, id int) (*model.Employee, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("employee", nil)
	}
	return e, nil
}
func (r *fakeEmployeeRepo) Update(_ context.Context, e *model.Employee) error { return nil }
func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]*model.Employee, error) {
	var result []*model.Employee
	for _, e := range r.items {
		if e.IsActive {
			result = append(result, e)
		}
	}
	return result, nil
}
func (r *fakeEmployeeRepo) ListActiveByPosition(_ context.Context, position int) ([]*model.Employee, error) {
	var result []*model.Employee
	for _, e := range r.items {
		if e.IsActive && e.Position == position {
			result = append(result, e)
		}
	}
	return result, nil
}
func (r *fakeEmployeeRepo) FirstActiveID(_ context.Context) (int, error) { return 1, nil }

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	event.ID = uuid.New()
	r.events = append(r.events, event)
	return nil
}
func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}
func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return nil
}
func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeVocabulary struct {
	statuses []string
	types    []string
}

func (v *fakeVocabulary) AppointmentStatuses(_ context.Context) ([]string, error) {
	return v.statuses, nil
}
func (v *fakeVocabulary) AppointmentTypes(_ context.Context) ([]string, error) {
	return v.types, nil
}

type fixture struct {
	svc    *Service
	repo   *fakeAppointmentRepo
	outbox *fakeOutboxRepo
}

func newFixture() *fixture {
	repo := newFakeAppointmentRepo()
	outbox := &fakeOutboxRepo{}
	patients := &fakePatientRepo{items: map[int]*model.Patient{
		1: {ID: 1, FirstName: "Jane", LastName: "Miller", Phone: "555-0101", Email: "jane@example.com", IsActive: true},
	}}
	employees := &fakeEmployeeRepo{items: map[int]*model.Employee{
		1: {ID: 1, FirstName: "Gregory", LastName: "House", Position: model.PositionDoctor, IsActive: true},
		2: {ID: 2, FirstName: "James", LastName: "Wilson", Position: model.PositionDoctor, IsActive: true},
	}}
	vocab := &fakeVocabulary{
		statuses: []string{"Scheduled", "Completed", "Cancelled"},
		types:    []string{"Checkup", "Lab Test", "Surgery"},
	}

	svc := NewService(repo, patients, employees, outbox, vocab, nil, logger.NewLogger(nil))
	return &fixture{svc: svc, repo: repo, outbox: outbox}
}

func createRequest(scheduledOn time.Time) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ClientID:             1,
		ClientName:           "Jane Miller",
		AssignedEmployeeID:   1,
		AssignedEmployeeName: "Gregory House",
		ScheduledOn:          &scheduledOn,
		Type:                 "Checkup",
		Name:                 "Annual checkup",
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	scheduledOn := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(ctx, createRequest(scheduledOn))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
	assert.Equal(t, "Jane Miller", created.ClientName)
	assert.Equal(t, "555-0101", created.ClientPhone)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.ClientName, got.ClientName)
	assert.Equal(t, created.AssignedEmployeeName, got.AssignedEmployeeName)
	assert.True(t, scheduledOn.Equal(*got.ScheduledOn))
	assert.Nil(t, got.ClosedOn)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, f.outbox.events[0].EventType)
}

func TestCreateUnknownClient(t *testing.T) {
	f := newFixture()
	req := createRequest(time.Now())
	req.ClientID = 99

	_, err := f.svc.Create(context.Background(), req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateUnknownStatusRejected(t *testing.T) {
	f := newFixture()
	req := createRequest(time.Now())
	req.Status = "Teleported"

	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Teleported")
}

func TestCreateUnknownParentRejected(t *testing.T) {
	f := newFixture()
	req := createRequest(time.Now())
	parent := 42
	req.ParentID = &parent

	_, err := f.svc.Create(context.Background(), req)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAvailabilityWindow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	booked := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, createRequest(booked))
	require.NoError(t, err)

	cases := []struct {
		name      string
		offset    time.Duration
		available bool
	}{
		{"same minute", 0, false},
		{"29 minutes later", 29 * time.Minute, false},
		{"exactly 30 minutes later", 30 * time.Minute, false},
		{"31 minutes later", 31 * time.Minute, true},
		{"exactly 30 minutes earlier", -30 * time.Minute, false},
		{"31 minutes earlier", -31 * time.Minute, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			available, err := f.svc.IsTimeSlotAvailable(ctx, 1, booked.Add(tc.offset))
			require.NoError(t, err)
			assert.Equal(t, tc.available, available)
		})
	}
}

func TestAvailabilityIgnoresOtherEmployees(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	booked := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, createRequest(booked))
	require.NoError(t, err)

	available, err := f.svc.IsTimeSlotAvailable(ctx, 2, booked)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestAvailabilityIgnoresCancelled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	booked := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(ctx, createRequest(booked))
	require.NoError(t, err)

	ok, err := f.svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	available, err := f.svc.IsTimeSlotAvailable(ctx, 1, booked)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCreateDoesNotBlockOnConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	booked := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, createRequest(booked))
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, createRequest(booked.Add(10*time.Minute)))
	require.NoError(t, err)
	assert.NotZero(t, second.ID)
}

func TestCancelMissingReturnsFalse(t *testing.T) {
	f := newFixture()

	ok, err := f.svc.Cancel(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancelSetsTerminalState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Now()))
	require.NoError(t, err)

	ok, err := f.svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	require.NotNil(t, got.ClosedOn)
}

func TestCancelThenCompleteConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Now()))
	require.NoError(t, err)

	ok, err := f.svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Complete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// closedOn from the first transition stays put
	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	assert.NotNil(t, got.ClosedOn)
}

func TestPartialUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, &model.UpdateAppointmentRequest{
		ID:    created.ID,
		Notes: "patient prefers mornings",
	})
	require.NoError(t, err)

	assert.Equal(t, "patient prefers mornings", updated.Notes)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.ClientName, updated.ClientName)
	assert.Equal(t, created.Status, updated.Status)
	assert.True(t, created.ScheduledOn.Equal(*updated.ScheduledOn))
}

func TestUpdateIDMismatchRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), 1, &model.UpdateAppointmentRequest{ID: 2})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.True(t, strings.Contains(err.Error(), "mismatch"))
}

func TestUpdateSelfParentRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Now()))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, &model.UpdateAppointmentRequest{
		ID:       created.ID,
		ParentID: &created.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateTerminalStatusChangeConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Now()))
	require.NoError(t, err)

	ok, err := f.svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Update(ctx, created.ID, &model.UpdateAppointmentRequest{
		ID:     created.ID,
		Status: model.AppointmentStatusScheduled,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUpdateToTerminalStatusStampsClosedOn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(time.Now()))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, &model.UpdateAppointmentRequest{
		ID:     created.ID,
		Status: model.AppointmentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
	assert.NotNil(t, updated.ClosedOn)
}

func TestListByDateWindow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inside := []time.Time{
		day,
		day.Add(9 * time.Hour),
		day.Add(23*time.Hour + 59*time.Minute),
	}
	outside := []time.Time{
		day.Add(-time.Minute),
		day.Add(24 * time.Hour),
	}

	for _, ts := range append(inside, outside...) {
		_, err := f.svc.Create(ctx, createRequest(ts))
		require.NoError(t, err)
	}

	appointments, err := f.svc.ListByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, appointments, len(inside))
}

func TestListOrderedBySchedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := f.svc.Create(ctx, createRequest(base.Add(offset)))
		require.NoError(t, err)
	}

	appointments, err := f.svc.List(ctx, &model.AppointmentFilters{})
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	for i := 1; i < len(appointments); i++ {
		assert.False(t, appointments[i].ScheduledOn.Before(*appointments[i-1].ScheduledOn))
	}
}

func TestDoctorsFiltersByPosition(t *testing.T) {
	f := newFixture()

	doctors, err := f.svc.Doctors(context.Background())
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
	for _, d := range doctors {
		assert.True(t, d.IsActive)
		assert.NotEmpty(t, d.FullName)
	}
}
