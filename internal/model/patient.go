package model

import (
	"time"
)

// Patient is the clients table row. Deactivation flips IsActive; rows are
// never physically deleted.
type Patient struct {
	ID                  int        `db:"id" json:"id"`
	FirstName           string     `db:"first_name" json:"first_name"`
	LastName            string     `db:"last_name" json:"last_name"`
	Gender              int        `db:"gender" json:"gender"`
	DateOfBirth         time.Time  `db:"date_of_birth" json:"date_of_birth"`
	Email               string     `db:"email" json:"email"`
	Address             string     `db:"address" json:"address"`
	Address2            *string    `db:"address2" json:"address2,omitempty"`
	City                string     `db:"city" json:"city"`
	ZipCode             string     `db:"zip_code" json:"zip_code"`
	Country             string     `db:"country" json:"country"`
	Phone               string     `db:"phone" json:"phone"`
	Phone2              *string    `db:"phone2" json:"phone2,omitempty"`
	MedicalRecordNumber string     `db:"medical_record_number" json:"medical_record_number"`
	LastAppointmentDate time.Time  `db:"last_appointment_date" json:"last_appointment_date"`
	IsSubscribed        bool       `db:"is_subscribed" json:"is_subscribed"`
	IsActive            bool       `db:"is_active" json:"is_active"`
	CreatedBy           int        `db:"created_by" json:"created_by"`
	UpdatedBy           int        `db:"updated_by" json:"updated_by"`
	CreatedOn           time.Time  `db:"created_on" json:"created_on"`
	UpdatedOn           *time.Time `db:"updated_on" json:"updated_on,omitempty"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CreatePatientRequest struct {
	FirstName           string     `json:"first_name" validate:"required,max=50"`
	LastName            string     `json:"last_name" validate:"required,max=50"`
	Gender              int        `json:"gender"`
	DateOfBirth         time.Time  `json:"date_of_birth" validate:"required"`
	Email               string     `json:"email" validate:"required,email,max=100"`
	Phone               string     `json:"phone" validate:"required,max=20"`
	Phone2              string     `json:"phone2" validate:"max=20"`
	Address             string     `json:"address" validate:"required,max=255"`
	Address2            string     `json:"address2" validate:"max=255"`
	City                string     `json:"city" validate:"required,max=50"`
	ZipCode             string     `json:"zip_code" validate:"required,max=20"`
	Country             string     `json:"country" validate:"required,max=50"`
	MedicalRecordNumber string     `json:"medical_record_number" validate:"required,max=50"`
	LastAppointmentDate *time.Time `json:"last_appointment_date"`
	IsSubscribed        bool       `json:"is_subscribed"`
}

type UpdatePatientRequest struct {
	ID                  int        `json:"id" validate:"required"`
	FirstName           string     `json:"first_name" validate:"max=50"`
	LastName            string     `json:"last_name" validate:"max=50"`
	Gender              *int       `json:"gender"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Email               string     `json:"email" validate:"max=100"`
	Phone               string     `json:"phone" validate:"max=20"`
	Phone2              *string    `json:"phone2"`
	Address             string     `json:"address" validate:"max=255"`
	Address2            *string    `json:"address2"`
	City                string     `json:"city" validate:"max=50"`
	ZipCode             string     `json:"zip_code" validate:"max=20"`
	Country             string     `json:"country" validate:"max=50"`
	MedicalRecordNumber string     `json:"medical_record_number" validate:"max=50"`
	LastAppointmentDate *time.Time `json:"last_appointment_date"`
	IsSubscribed        *bool      `json:"is_subscribed"`
	IsActive            *bool      `json:"is_active"`
}

type PatientListItem struct {
	ID                  int       `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	FullName            string    `json:"full_name"`
	Gender              int       `json:"gender"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	LastAppointmentDate time.Time `json:"last_appointment_date"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	IsActive            bool      `json:"is_active"`
}

type PatientDetail struct {
	ID                  int       `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	FullName            string    `json:"full_name"`
	Gender              int       `json:"gender"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Phone2              *string   `json:"phone2,omitempty"`
	Address             string    `json:"address"`
	Address2            *string   `json:"address2,omitempty"`
	City                string    `json:"city"`
	ZipCode             string    `json:"zip_code"`
	Country             string    `json:"country"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	LastAppointmentDate time.Time `json:"last_appointment_date"`
	IsSubscribed        bool      `json:"is_subscribed"`
	IsActive            bool      `json:"is_active"`
}

type PatientSearchResult struct {
	ID                  int    `json:"id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	MedicalRecordNumber string `json:"medical_record_number"`
}
