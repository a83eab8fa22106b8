package master

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	"github.com/clinicdesk/clinic-api/pkg/logger"
)

// Vocabulary cache TTL. Master data changes rarely; a short TTL keeps
// admin edits visible without hitting the database on every booking.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Currencies and languages are fixed; the rest of the vocabularies come
// from system options.
var (
	currencies = []string{"USD", "CAD", "GBP", "INR", "AUD"}
	languages  = []string{"English", "French", "Spanish", "Hindi", "German"}
)

type Service struct {
	repo   repository.OptionRepository
	cache  *cache.Cache
	logger *logger.Logger
}

func NewService(repo repository.OptionRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache.New(cacheTTL, cacheCleanup),
		logger: logger,
	}
}

// MasterData returns every vocabulary in one aggregate.
func (s *Service) MasterData(ctx context.Context) (*model.MasterData, error) {
	data := &model.MasterData{
		Currencies: currencies,
		Languages:  languages,
	}

	var err error
	if data.Countries, err = s.values(ctx, model.OptionCountry); err != nil {
		return nil, err
	}
	if data.AppointmentTypes, err = s.values(ctx, model.OptionAppointmentType); err != nil {
		return nil, err
	}
	if data.AppointmentStatuses, err = s.values(ctx, model.OptionAppointmentStatus); err != nil {
		return nil, err
	}
	if data.Genders, err = s.values(ctx, model.OptionGender); err != nil {
		return nil, err
	}
	if data.Departments, err = s.values(ctx, model.OptionDepartment); err != nil {
		return nil, err
	}
	if data.Designations, err = s.values(ctx, model.OptionPosition); err != nil {
		return nil, err
	}
	return data, nil
}

// AppointmentStatuses implements the scheduling vocabulary lookup.
func (s *Service) AppointmentStatuses(ctx context.Context) ([]string, error) {
	return s.values(ctx, model.OptionAppointmentStatus)
}

func (s *Service) AppointmentTypes(ctx context.Context) ([]string, error) {
	return s.values(ctx, model.OptionAppointmentType)
}

func (s *Service) Countries(ctx context.Context) ([]string, error) {
	return s.values(ctx, model.OptionCountry)
}

func (s *Service) Currencies() []string {
	return currencies
}

func (s *Service) Languages() []string {
	return languages
}

func (s *Service) values(ctx context.Context, name string) ([]string, error) {
	if cached, ok := s.cache.Get(name); ok {
		return cached.([]string), nil
	}

	values, err := s.repo.ActiveValues(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s options: %w", name, err)
	}

	s.cache.Set(name, values, cache.DefaultExpiration)
	return values, nil
}
