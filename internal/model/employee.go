package model

import (
	"time"
)

// Employee positions are master-data driven; position 1 is the doctor
// position the booking flows filter on.
const PositionDoctor = 1

type Employee struct {
	ID         int        `db:"id" json:"id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Gender     int        `db:"gender" json:"gender"`
	Email      string     `db:"email" json:"email"`
	Phone      string     `db:"phone" json:"phone"`
	Address    string     `db:"address" json:"address"`
	Position   int        `db:"position" json:"position"`
	Department int        `db:"department" json:"department"`
	HireDate   time.Time  `db:"hire_date" json:"hire_date"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	CreatedBy  int        `db:"created_by" json:"created_by"`
	UpdatedBy  int        `db:"updated_by" json:"updated_by"`
	CreatedOn  time.Time  `db:"created_on" json:"created_on"`
	UpdatedOn  *time.Time `db:"updated_on" json:"updated_on,omitempty"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type UpdateEmployeeRequest struct {
	ID         int        `json:"id" validate:"required"`
	FirstName  string     `json:"first_name" validate:"max=50"`
	LastName   string     `json:"last_name" validate:"max=50"`
	Gender     *int       `json:"gender"`
	Email      string     `json:"email" validate:"max=100"`
	Phone      string     `json:"phone" validate:"max=20"`
	Address    string     `json:"address" validate:"max=255"`
	Position   *int       `json:"position"`
	Department *int       `json:"department"`
	HireDate   *time.Time `json:"hire_date"`
}

// EmployeeView is the employee/doctor listing projection.
type EmployeeView struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Gender     int        `json:"gender"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	Position   int        `json:"position"`
	Department int        `json:"department"`
	HireDate   time.Time  `json:"hire_date"`
	IsActive   bool       `json:"is_active"`
}

// Doctor is the bookable-practitioner projection used by the scheduling
// surface.
type Doctor struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
}
