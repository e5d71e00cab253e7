package models

import "time"

// EmployeeStatus is the HR state of an employee.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Activo"
	EmployeeInactive EmployeeStatus = "Inactivo"
)

// Employee is an HR profile paired 1:1 with a [User] by email and user id.
type Employee struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	EmployeeType       string         `json:"employee_type"`
	Department         string         `json:"department"`
	Position           string         `json:"position"`
	HireDate           string         `json:"hire_date"`
	Status             EmployeeStatus `json:"status"`
	MustChangePassword bool           `json:"must_change_password"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Employee model.
func (e Employee) TableName() string {
	return "employees"
}
