package models

// RegisterRequest is the input of the registration flow.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the input of the login flow.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest is the input of the OTP verification flow.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

// ChangePasswordRequest is the input of the password change flow.
type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// CreateEmployeeRequest is the input of the employee provisioning flow.
// Optional fields may be left empty.
type CreateEmployeeRequest struct {
	Name         string         `json:"name" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Phone        string         `json:"phone" validate:"omitempty,phone"`
	EmployeeType string         `json:"employeeType"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	HireDate     string         `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	Status       EmployeeStatus `json:"status" validate:"omitempty,employee_status"`
}

// TrackVisitRequest is the input of visit tracking.
type TrackVisitRequest struct {
	Path string `json:"path"`
}
