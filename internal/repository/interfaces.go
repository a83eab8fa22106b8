package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository handles appointment storage. Create assigns the
	// identity; Get and Update report a missing row as a not-found error.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		HasConflict(ctx context.Context, employeeID int, from, to time.Time) (bool, error)
		CountByTypeAndStatus(ctx context.Context, appointmentType, status string) (int, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		ListActive(ctx context.Context) ([]*model.Patient, error)
		Search(ctx context.Context, term string) ([]*model.Patient, error)
		ExistsByMRN(ctx context.Context, mrn string) (bool, error)
		Count(ctx context.Context) (int, error)
	}

	EmployeeRepository interface {
		Get(ctx context.Context, id int) (*model.Employee, error)
		Update(ctx context.Context, employee *model.Employee) error
		ListActive(ctx context.Context) ([]*model.Employee, error)
		ListActiveByPosition(ctx context.Context, position int) ([]*model.Employee, error)
		FirstActiveID(ctx context.Context) (int, error)
	}

	// OptionRepository serves the system_options table: vocabularies for the
	// master service and the clinic-settings key/value store.
	OptionRepository interface {
		ActiveValues(ctx context.Context, name string) ([]string, error)
		ModuleValues(ctx context.Context, module string) (map[string]string, error)
		UpsertTx(ctx context.Context, tx *sqlx.Tx, opt *model.SystemOption) error
	}

	UserRepository interface {
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
