package models

// Result is the envelope shared by every API response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RegisterResult is returned by a successful registration.
type RegisterResult struct {
	Result
	UserID string `json:"userId,omitempty"`
}

// LoginResult is returned by the login flow. User is set only when no OTP is
// required.
type LoginResult struct {
	Result
	RequiresOTP bool      `json:"requiresOTP"`
	UserID      string    `json:"userId,omitempty"`
	User        *UserView `json:"user,omitempty"`
}

// OTPResult is returned by the OTP verification flow. AttemptsLeft is set
// when a wrong code was submitted.
type OTPResult struct {
	Result
	AttemptsLeft *int      `json:"attemptsLeft,omitempty"`
	User         *UserView `json:"user,omitempty"`
}

// UserResult wraps a single user view.
type UserResult struct {
	Result
	User *UserView `json:"user,omitempty"`
}

// CountResult wraps a counter.
type CountResult struct {
	Result
	Count int `json:"count"`
}

// EmployeesResult wraps the employee listing.
type EmployeesResult struct {
	Result
	Employees []Employee `json:"employees"`
}

// EmployeeResult wraps a single employee.
type EmployeeResult struct {
	Result
	Employee *Employee `json:"employee,omitempty"`
}

// AuditResult wraps an audit log page.
type AuditResult struct {
	Result
	Audits []AuditEvent `json:"audits"`
	Total  int          `json:"total"`
}

// VisitSummaryResult wraps visit statistics.
type VisitSummaryResult struct {
	Result
	VisitSummary
}
