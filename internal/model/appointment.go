package model

import (
	"time"
)

// Built-in appointment statuses. The vocabulary is open-ended: system
// options may define additional values, these three are the ones the
// lifecycle itself assigns.
const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

// TerminalStatus reports whether no further lifecycle transition is
// modeled out of the given status.
func TerminalStatus(status string) bool {
	return status == AppointmentStatusCompleted || status == AppointmentStatusCancelled
}

// Appointment is the stored record. ClientName and AssignedEmployeeName are
// snapshots taken at booking time; they are not refreshed when the patient
// or employee record changes.
type Appointment struct {
	ID                   int        `db:"id" json:"id"`
	ParentID             *int       `db:"parent_id" json:"parent_id,omitempty"`
	Name                 string     `db:"name" json:"name,omitempty"`
	Description          string     `db:"description" json:"description,omitempty"`
	Notes                string     `db:"notes" json:"notes,omitempty"`
	ClientID             int        `db:"client_id" json:"client_id"`
	ClientName           string     `db:"client_name" json:"client_name"`
	AssignedEmployeeID   int        `db:"assigned_employee_id" json:"assigned_employee_id"`
	AssignedEmployeeName string     `db:"assigned_employee_name" json:"assigned_employee_name"`
	PrescribedBy         *int       `db:"prescribed_by" json:"prescribed_by,omitempty"`
	ScheduledOn          *time.Time `db:"scheduled_on" json:"scheduled_on,omitempty"`
	ClosedOn             *time.Time `db:"closed_on" json:"closed_on,omitempty"`
	Type                 string     `db:"type" json:"type,omitempty"`
	Status               string     `db:"status" json:"status"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	ClientID             int        `json:"client_id" validate:"required"`
	ClientName           string     `json:"client_name" validate:"required,max=255"`
	AssignedEmployeeID   int        `json:"assigned_employee_id" validate:"required"`
	AssignedEmployeeName string     `json:"assigned_employee_name" validate:"required,max=255"`
	PrescribedBy         *int       `json:"prescribed_by"`
	ScheduledOn          *time.Time `json:"scheduled_on" validate:"required"`
	Type                 string     `json:"type" validate:"max=50"`
	Status               string     `json:"status" validate:"max=50"`
	Name                 string     `json:"name" validate:"max=255"`
	Description          string     `json:"description" validate:"max=500"`
	Notes                string     `json:"notes" validate:"max=1000"`
	ParentID             *int       `json:"parent_id"`
}

// UpdateAppointmentRequest carries a partial update. Absent and
// empty-string fields leave the stored value untouched, so a field can
// never be cleared back to empty through this path.
type UpdateAppointmentRequest struct {
	ID                   int        `json:"id" validate:"required"`
	ClientID             *int       `json:"client_id"`
	ClientName           string     `json:"client_name" validate:"max=255"`
	AssignedEmployeeID   *int       `json:"assigned_employee_id"`
	AssignedEmployeeName string     `json:"assigned_employee_name" validate:"max=255"`
	PrescribedBy         *int       `json:"prescribed_by"`
	ScheduledOn          *time.Time `json:"scheduled_on"`
	Type                 string     `json:"type" validate:"max=50"`
	Status               string     `json:"status" validate:"max=50"`
	Name                 string     `json:"name" validate:"max=255"`
	Description          string     `json:"description" validate:"max=500"`
	Notes                string     `json:"notes" validate:"max=1000"`
	ClosedOn             *time.Time `json:"closed_on"`
	ParentID             *int       `json:"parent_id"`
}

// AppointmentFilters narrows List queries. ScheduledFrom/ScheduledTo are
// inclusive; ScheduledBefore is exclusive and serves the day-window paths.
type AppointmentFilters struct {
	ClientID        *int
	EmployeeID      *int
	Status          string
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
	ScheduledBefore *time.Time
}

// AppointmentDetail is the read projection for detail responses. The
// contact and prescriber fields come from best-effort collaborator
// lookups and stay empty when those do not resolve.
type AppointmentDetail struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name,omitempty"`
	Description          string     `json:"description,omitempty"`
	ScheduledOn          *time.Time `json:"scheduled_on,omitempty"`
	ClosedOn             *time.Time `json:"closed_on,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	Type                 string     `json:"type,omitempty"`
	Status               string     `json:"status"`
	ClientID             int        `json:"client_id"`
	ClientName           string     `json:"client_name"`
	ClientPhone          string     `json:"client_phone,omitempty"`
	ClientEmail          string     `json:"client_email,omitempty"`
	AssignedEmployeeID   int        `json:"assigned_employee_id"`
	AssignedEmployeeName string     `json:"assigned_employee_name"`
	PrescribedBy         *int       `json:"prescribed_by,omitempty"`
	PrescribedByName     string     `json:"prescribed_by_name,omitempty"`
	ParentID             *int       `json:"parent_id,omitempty"`
	ParentAppointmentName string    `json:"parent_appointment_name,omitempty"`
}

// AppointmentListItem is the narrow projection for tables and dashboards.
type AppointmentListItem struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name,omitempty"`
	ScheduledOn          *time.Time `json:"scheduled_on,omitempty"`
	Status               string     `json:"status"`
	ClientName           string     `json:"client_name"`
	AssignedEmployeeName string     `json:"assigned_employee_name"`
	Type                 string     `json:"type,omitempty"`
}

// TodayAppointments wraps the day view with its count.
type TodayAppointments struct {
	Date              time.Time             `json:"date"`
	TotalAppointments int                   `json:"total_appointments"`
	Appointments      []*AppointmentListItem `json:"appointments"`
}

// Availability is the check-availability response payload.
type Availability struct {
	IsAvailable   bool      `json:"isAvailable"`
	EmployeeID    int       `json:"employeeId"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Message       string    `json:"message"`
}
