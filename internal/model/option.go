package model

import (
	"time"
)

// System option modules and names used by the services. Options are the
// runtime-configurable vocabularies (statuses, types, departments) and the
// clinic-settings key/value store.
const (
	OptionModuleMaster   = "Master"
	OptionModuleSettings = "ClinicSettings"

	OptionAppointmentStatus = "AppointmentStatus"
	OptionAppointmentType   = "AppointmentType"
	OptionCountry           = "Country"
	OptionGender            = "Gender"
	OptionDepartment        = "Department"
	OptionPosition          = "Position"
)

type SystemOption struct {
	ID          int        `db:"id" json:"id"`
	Module      string     `db:"module" json:"module"`
	Name        string     `db:"name" json:"name"`
	Type        string     `db:"type" json:"type"`
	Description *string    `db:"description" json:"description,omitempty"`
	Value       string     `db:"value" json:"value"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedBy   int        `db:"created_by" json:"created_by"`
	CreatedOn   time.Time  `db:"created_on" json:"created_on"`
	UpdatedBy   *int       `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedOn   *time.Time `db:"updated_on" json:"updated_on,omitempty"`
}

// MasterData aggregates every vocabulary the frontend needs in one call.
type MasterData struct {
	Countries            []string `json:"countries"`
	Currencies           []string `json:"currencies"`
	Languages            []string `json:"languages"`
	AppointmentTypes     []string `json:"appointment_types"`
	Genders              []string `json:"genders"`
	Departments          []string `json:"departments"`
	Designations         []string `json:"designations"`
	AppointmentStatuses  []string `json:"appointment_statuses"`
}

type ClinicSettings struct {
	ClinicName    string `json:"clinic_name" validate:"required,max=255"`
	EmailAddress  string `json:"email_address" validate:"required,email,max=100"`
	Website       string `json:"website" validate:"max=255"`
	Address       string `json:"address" validate:"required,max=255"`
	PrimaryPhone  string `json:"primary_phone" validate:"required,max=20"`
	Timezone      string `json:"timezone" validate:"max=100"`
	BusinessHours string `json:"business_hours" validate:"max=255"`
}
