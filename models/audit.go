package models

import "time"

// AuditAction names a security-relevant event.
type AuditAction string

const (
	ActionUserRegistered     AuditAction = "USER_REGISTERED"
	ActionLoginFailed        AuditAction = "LOGIN_FAILED"
	ActionLoginSuccess       AuditAction = "LOGIN_SUCCESS"
	ActionLoginOTPRequired   AuditAction = "LOGIN_OTP_REQUIRED"
	ActionOTPVerified        AuditAction = "OTP_VERIFIED_SUCCESS"
	ActionPasswordChanged    AuditAction = "PASSWORD_CHANGED"
	ActionEmployeeRegistered AuditAction = "EMPLOYEE_REGISTERED"
	ActionEmployeeDeleted    AuditAction = "EMPLOYEE_DELETED"
)

// UnknownEmail is recorded when the actor's email is not known.
const UnknownEmail = "N/A"

// AuditEvent is an immutable record of a security-relevant action.
type AuditEvent struct {
	ID        string      `json:"id"`
	UserID    *string     `json:"user_id"`
	Email     string      `json:"email"`
	Action    AuditAction `json:"action"`
	IP        string      `json:"ip"`
	UserAgent string      `json:"user_agent"`
	Timestamp time.Time   `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the AuditEvent model.
func (a AuditEvent) TableName() string {
	return "audit_logs"
}

// ClientInfo describes the caller of an operation for audit purposes.
type ClientInfo struct {
	IP        string
	UserAgent string
}
