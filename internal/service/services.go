package service

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/adapter"
	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/crypto"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/ratelimit"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// Deps are the collaborators shared by the services. Storage and Sender are
// required; the rest fall back to production defaults when nil.
type Deps struct {
	Storage store.Storage
	Sender  adapter.EmailSender
	Limiter ratelimit.LoginLimiter
	Hasher  crypto.PasswordHasher
	Secrets crypto.SecretGenerator
	IDs     IDGenerator
	Metrics *metrics.Metrics

	// Build is the metadata injected by the linker.
	Build models.AppBuildInfo

	// Now is the clock of the flows. Defaults to time.Now in UTC.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Limiter == nil {
		d.Limiter = ratelimit.NopLoginLimiter()
	}
	if d.Hasher == nil {
		d.Hasher = crypto.NewArgon2Hasher(crypto.DefaultArgon2Params)
	}
	if d.Secrets == nil {
		d.Secrets = crypto.NewSecretGenerator()
	}
	if d.IDs == nil {
		d.IDs = utils.NewUUIDGenerator()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

type Services struct {
	AuthService         AuthService
	TokenService        TokenService
	EmployeeService     EmployeeService
	AuditService        AuditService
	AnalyticsService    AnalyticsService
	HousekeepingService HousekeepingService
	AppInfoService      AppInfoService
	HealthService       HealthService
}

// NewServices builds every service. Request validation is layered on top of
// the auth and employee services.
func NewServices(deps Deps, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	deps = deps.withDefaults()

	appInfoService, err := NewAppInfoService(cfg.App, deps.Build, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthValidationService().Wrap(NewAuthService(deps, cfg.App, logger))
	employeeService := NewEmployeeValidationService().Wrap(NewEmployeeService(deps, logger))

	return &Services{
		AuthService:         authService,
		TokenService:        NewTokenService(cfg.App, logger),
		EmployeeService:     employeeService,
		AuditService:        NewAuditService(deps.Storage, cfg.App, logger),
		AnalyticsService:    NewAnalyticsService(deps, logger),
		HousekeepingService: NewHousekeepingService(deps, cfg.App, logger),
		AppInfoService:      appInfoService,
		HealthService:       NewHealthService(deps.Storage),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
