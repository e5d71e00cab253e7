package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-erp-auth/models"
)

// UserRepository persists user accounts. Emails are compared exactly; callers
// normalize them before reaching the store.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUserByEmail(ctx context.Context, email string) error
	CountUsers(ctx context.Context) (int, error)
}

// OTPRepository persists one-time codes. Only the newest record of a user is
// authoritative.
type OTPRepository interface {
	CreateOTP(ctx context.Context, otp models.OTP) error
	FindLatestOTP(ctx context.Context, userID string) (models.OTP, error)
	UpdateOTPAttempts(ctx context.Context, id string, attempts int) error
	DeleteOTP(ctx context.Context, id string) error
	DeleteUserOTPs(ctx context.Context, userID string) error
	DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// AuditRepository is the append-only audit log.
type AuditRepository interface {
	CreateAuditEvent(ctx context.Context, event models.AuditEvent) error
	ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error)
	CountAuditEvents(ctx context.Context) (int, error)
	// TrimAuditEvents deletes everything except the newest keep events and
	// reports how many were removed.
	TrimAuditEvents(ctx context.Context, keep int) (int64, error)
}

type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee models.Employee) error
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	FindEmployeeByID(ctx context.Context, id string) (models.Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (models.Employee, error)
	SetMustChangePassword(ctx context.Context, email string, mustChange bool) error
	DeleteEmployee(ctx context.Context, id string) error
}

type VisitRepository interface {
	CreateVisit(ctx context.Context, visit models.Visit) error
	CountVisits(ctx context.Context) (int, error)
	VisitTimestampsSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// Repositories groups one repository per entity. Inside [Storage.WithTx] all
// of them share the same unit of work.
type Repositories struct {
	Users     UserRepository
	OTPs      OTPRepository
	Audit     AuditRepository
	Employees EmployeeRepository
	Visits    VisitRepository
}

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, repos Repositories) error

// Storage is the persistence backend used by the services. Both the SQL and
// the flat-file implementations satisfy it.
type Storage interface {
	Repos() Repositories
	// WithTx runs fn in one unit of work: either every write made through
	// the passed repositories is persisted or none is.
	WithTx(ctx context.Context, fn TxFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// ErrorClassificator tells how a driver error should be treated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
