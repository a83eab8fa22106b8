package master

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

type fakeOptionRepo struct {
	values map[string][]string
	calls  map[string]int
}

func (r *fakeOptionRepo) ActiveValues(_ context.Context, name string) ([]string, error) {
	r.calls[name]++
	return r.values[name], nil
}

func (r *fakeOptionRepo) ModuleValues(_ context.Context, module string) (map[string]string, error) {
	return nil, nil
}

func (r *fakeOptionRepo) UpsertTx(_ context.Context, _ *sqlx.Tx, _ *model.SystemOption) error {
	return nil
}

func newFakeOptionRepo() *fakeOptionRepo {
	return &fakeOptionRepo{
		values: map[string][]string{
			model.OptionAppointmentStatus: {"Scheduled", "Completed", "Cancelled"},
			model.OptionAppointmentType:   {"Checkup", "Lab Test"},
			model.OptionCountry:           {"USA", "Canada"},
			model.OptionGender:            {"Female", "Male", "Other"},
			model.OptionDepartment:        {"Cardiology"},
			model.OptionPosition:          {"Doctor", "Nurse"},
		},
		calls: map[string]int{},
	}
}

func TestMasterDataAggregate(t *testing.T) {
	repo := newFakeOptionRepo()
	svc := NewService(repo, logger.NewLogger(nil))

	data, err := svc.MasterData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"USD", "CAD", "GBP", "INR", "AUD"}, data.Currencies)
	assert.Equal(t, []string{"English", "French", "Spanish", "Hindi", "German"}, data.Languages)
	assert.Equal(t, []string{"USA", "Canada"}, data.Countries)
	assert.Equal(t, []string{"Scheduled", "Completed", "Cancelled"}, data.AppointmentStatuses)
	assert.Equal(t, []string{"Checkup", "Lab Test"}, data.AppointmentTypes)
	assert.Equal(t, []string{"Doctor", "Nurse"}, data.Designations)
}

func TestVocabularyIsCached(t *testing.T) {
	repo := newFakeOptionRepo()
	svc := NewService(repo, logger.NewLogger(nil))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AppointmentStatuses(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.calls[model.OptionAppointmentStatus])
}
