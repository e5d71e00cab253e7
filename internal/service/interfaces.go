package service

import (
	"context"

	"github.com/MKhiriev/go-erp-auth/models"
)

// AuthService implements registration, login, OTP verification and
// password change.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.OTPResult, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.Result, error)
	GetUser(ctx context.Context, email string) (models.UserView, error)
	CountUsers(ctx context.Context) (int, error)
}

// TokenService issues and checks session tokens.
type TokenService interface {
	CreateToken(ctx context.Context, user models.UserView) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// EmployeeService provisions and removes employees together with their
// paired user accounts.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// AuditService is the read side of the audit log.
type AuditService interface {
	// List returns up to limit events, newest first. A zero limit selects
	// the default page size.
	List(ctx context.Context, limit int) ([]models.AuditEvent, error)
	Count(ctx context.Context) (int, error)
}

type AnalyticsService interface {
	TrackVisit(ctx context.Context, req models.TrackVisitRequest) error
	// Summary reports visits of the last days calendar days (UTC),
	// today included. A zero value selects the default period.
	Summary(ctx context.Context, days int) (models.VisitSummary, error)
}

// HousekeepingService reclaims records that are no longer needed. It is
// driven by the background workers and is never required for correctness.
type HousekeepingService interface {
	SweepExpiredOTPs(ctx context.Context) (int64, error)
	EnforceAuditRetention(ctx context.Context) (int64, error)
}

// AppInfoService exposes the identity of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// HealthService reports whether the backing storage answers.
type HealthService interface {
	Ping(ctx context.Context) error
}

// IDGenerator issues entity identifiers.
type IDGenerator interface {
	Generate() string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// EmployeeServiceWrapper defines middleware composition for EmployeeService.
type EmployeeServiceWrapper interface {
	Wrap(EmployeeService) EmployeeService
}
