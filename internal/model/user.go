package model

// User is a login account tied to an employee.
type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	EmployeeID   int    `db:"employee_id" json:"employee_id"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	EmployeeID int    `json:"employee_id"`
}
