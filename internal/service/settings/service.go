package settings

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/validator"
)

// Setting keys inside the ClinicSettings option module.
const (
	keyClinicName    = "ClinicName"
	keyEmailAddress  = "EmailAddress"
	keyWebsite       = "Website"
	keyAddress       = "Address"
	keyPrimaryPhone  = "PrimaryPhone"
	keyTimezone      = "Timezone"
	keyBusinessHours = "BusinessHours"
)

type Service struct {
	db       *sqlx.DB
	repo     repository.OptionRepository
	validate *validator.Validator
	logger   *logger.Logger
}

func NewService(db *sqlx.DB, repo repository.OptionRepository, logger *logger.Logger) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Get reads the clinic settings. Missing keys come back as empty strings.
func (s *Service) Get(ctx context.Context) (*model.ClinicSettings, error) {
	values, err := s.repo.ModuleValues(ctx, model.OptionModuleSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic settings: %w", err)
	}

	return &model.ClinicSettings{
		ClinicName:    values[keyClinicName],
		EmailAddress:  values[keyEmailAddress],
		Website:       values[keyWebsite],
		Address:       values[keyAddress],
		PrimaryPhone:  values[keyPrimaryPhone],
		Timezone:      values[keyTimezone],
		BusinessHours: values[keyBusinessHours],
	}, nil
}

// Update upserts all settings in one transaction so a failed write never
// leaves the keys half-applied.
func (s *Service) Update(ctx context.Context, settings *model.ClinicSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		return apperrors.Validation(err.Error(), err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settings transaction: %w", err)
	}
	defer tx.Rollback()

	entries := map[string]string{
		keyClinicName:    settings.ClinicName,
		keyEmailAddress:  settings.EmailAddress,
		keyWebsite:       settings.Website,
		keyAddress:       settings.Address,
		keyPrimaryPhone:  settings.PrimaryPhone,
		keyTimezone:      settings.Timezone,
		keyBusinessHours: settings.BusinessHours,
	}
	for name, value := range entries {
		opt := &model.SystemOption{
			Module:   model.OptionModuleSettings,
			Name:     name,
			Type:     "string",
			Value:    value,
			IsActive: true,
		}
		if err := s.repo.UpsertTx(ctx, tx, opt); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	s.logger.Info("clinic settings updated")
	return nil
}
