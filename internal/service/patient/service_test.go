package patient

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

type fakePatientRepo struct {
	nextID int
	items  map[int]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{items: make(map[int]*model.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedOn = time.Now()
	stored := *p
	r.items[p.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id int) (*model.Patient, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	clone := *p
	return &clone, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := r.items[p.ID]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	stored := *p
	r.items[p.ID] = &stored
	return nil
}

func (r *fakePatientRepo) ListActive(_ context.Context) ([]*model.Patient, error) {
	var result []*model.Patient
	for _, p := range r.items {
		if p.IsActive {
			clone := *p
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastName < result[j].LastName
	})
	return result, nil
}

func (r *fakePatientRepo) Search(_ context.Context, term string) ([]*model.Patient, error) {
	term = strings.ToLower(term)
	var result []*model.Patient
	for _, p := range r.items {
		if !p.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.FirstName), term) ||
			strings.Contains(strings.ToLower(p.LastName), term) ||
			strings.Contains(strings.ToLower(p.Email), term) ||
			strings.Contains(strings.ToLower(p.MedicalRecordNumber), term) {
			clone := *p
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakePatientRepo) ExistsByMRN(_ context.Context, mrn string) (bool, error) {
	for _, p := range r.items {
		if p.MedicalRecordNumber == mrn {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int, error) {
	return len(r.items), nil
}

type fakeEmployeeRepo struct{}

func (r *fakeEmployeeRepo) Get(_ context.Context, id int) (*model.Employee, error) {
	return nil, apperrors.NotFound("employee", nil)
}
func (r *fakeEmployeeRepo) Update(_ context.Context, e *model.Employee) error { return nil }
func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]*model.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) ListActiveByPosition(_ context.Context, position int) ([]*model.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) FirstActiveID(_ context.Context) (int, error) { return 7, nil }

func newService() (*Service, *fakePatientRepo) {
	repo := newFakePatientRepo()
	return NewService(repo, &fakeEmployeeRepo{}, logger.NewLogger(nil)), repo
}

func createRequest(mrn string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName:           "Jane",
		LastName:            "Miller",
		DateOfBirth:         time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
		Email:               "jane@example.com",
		Phone:               "555-0101",
		Address:             "12 Main St",
		City:                "Springfield",
		ZipCode:             "12345",
		Country:             "USA",
		MedicalRecordNumber: mrn,
	}
}

func TestCreatePatient(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), createRequest("MRN-001"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "Jane Miller", created.FullName)
}

func TestCreateDuplicateMRNConflicts(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("MRN-001"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateStampsAuditFields(t *testing.T) {
	svc, repo := newService()

	created, err := svc.Create(context.Background(), createRequest("MRN-001"))
	require.NoError(t, err)

	stored := repo.items[created.ID]
	assert.Equal(t, 7, stored.CreatedBy)
	assert.Equal(t, 7, stored.UpdatedBy)
}

func TestPartialUpdateKeepsFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &model.UpdatePatientRequest{
		ID:    created.ID,
		Phone: "555-0202",
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0202", updated.Phone)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.MedicalRecordNumber, updated.MedicalRecordNumber)
}

func TestUpdateMRNToExistingConflicts(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest("MRN-002"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, &model.UpdatePatientRequest{
		ID:                  second.ID,
		MedicalRecordNumber: "MRN-001",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestDeactivateHidesFromList(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)

	ok, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	patients, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)

	// the record itself survives the soft delete
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestDeactivateMissingReturnsFalse(t *testing.T) {
	svc, _ := newService()

	ok, err := svc.Deactivate(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchBlankTermReturnsEmpty(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)

	results, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchMatchesMRN(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("MRN-001"))
	require.NoError(t, err)

	results, err := svc.Search(ctx, "mrn-001")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MRN-001", results[0].MedicalRecordNumber)
}
