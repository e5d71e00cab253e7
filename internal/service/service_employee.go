package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/crypto"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/models"
)

type employeeService struct {
	storage store.Storage
	hasher  crypto.PasswordHasher
	secrets crypto.SecretGenerator
	ids     IDGenerator
	now     func() time.Time

	audit    auditWriter
	notifier notifier

	logger *logger.Logger
}

func NewEmployeeService(deps Deps, logger *logger.Logger) EmployeeService {
	deps = deps.withDefaults()

	return &employeeService{
		storage:  deps.Storage,
		hasher:   deps.Hasher,
		secrets:  deps.Secrets,
		ids:      deps.IDs,
		now:      deps.Now,
		audit:    auditWriter{ids: deps.IDs, now: deps.Now},
		notifier: notifier{sender: deps.Sender, metrics: deps.Metrics},
		logger:   logger,
	}
}

// CreateEmployee provisions an employee together with a verified user
// account holding a temporary password. The user must change the password
// on first use. The temporary password is emailed after the records are
// stored.
//
// Returns ErrConflict if an employee or a user with the email exists.
func (e *employeeService) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	tempPassword, err := e.secrets.TempPassword()
	if err != nil {
		log.Err(err).Str("func", "*employeeService.CreateEmployee").Msg("temporary password generation failed")
		return models.Employee{}, dependency(err)
	}
	hash, err := e.hasher.Hash(tempPassword)
	if err != nil {
		log.Err(err).Str("func", "*employeeService.CreateEmployee").Msg("password hashing failed")
		return models.Employee{}, dependency(err)
	}

	now := e.now()
	user := models.User{
		ID:                 e.ids.Generate(),
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PasswordHash:       hash,
		Verified:           true,
		Role:               models.RoleUser,
		MustChangePassword: true,
		CreatedAt:          now,
	}

	status := req.Status
	if status == "" {
		status = models.EmployeeActive
	}
	employee := models.Employee{
		ID:                 e.ids.Generate(),
		UserID:             user.ID,
		Name:               user.Name,
		Email:              email,
		Phone:              strings.TrimSpace(req.Phone),
		EmployeeType:       strings.TrimSpace(req.EmployeeType),
		Department:         strings.TrimSpace(req.Department),
		Position:           strings.TrimSpace(req.Position),
		HireDate:           strings.TrimSpace(req.HireDate),
		Status:             status,
		MustChangePassword: true,
		CreatedAt:          now,
	}

	err = e.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		_, err := repos.Employees.FindEmployeeByEmail(ctx, email)
		if err == nil {
			return store.ErrEmployeeAlreadyExists
		}
		if !errors.Is(err, store.ErrEmployeeNotFound) {
			return err
		}

		if err = repos.Users.CreateUser(ctx, user); err != nil {
			return err
		}
		if err = repos.Employees.CreateEmployee(ctx, employee); err != nil {
			return err
		}

		return e.audit.write(ctx, repos, models.ActionEmployeeRegistered, user.ID, email)
	})
	if errors.Is(err, store.ErrEmployeeAlreadyExists) || errors.Is(err, store.ErrUserAlreadyExists) {
		log.Info().Str("email", email).Msg("employee provisioning rejected: email already exists")
		return models.Employee{}, fmt.Errorf("%w: email %q is already registered", ErrConflict, email)
	}
	if err != nil {
		log.Err(err).Str("func", "*employeeService.CreateEmployee").Msg("employee provisioning failed")
		return models.Employee{}, dependency(err)
	}

	e.notifier.sendTempPassword(ctx, employee.Name, email, tempPassword)

	return employee, nil
}

// ListEmployees returns every employee, newest first.
func (e *employeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := e.storage.Repos().Employees.ListEmployees(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*employeeService.ListEmployees").Msg("employee listing failed")
		return nil, dependency(err)
	}
	return employees, nil
}

// DeleteEmployee removes the employee, its paired user and the user's
// pending codes in one unit of work, then records EMPLOYEE_DELETED.
func (e *employeeService) DeleteEmployee(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	err := e.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		employee, err := repos.Employees.FindEmployeeByID(ctx, id)
		if err != nil {
			return err
		}

		if err = repos.Employees.DeleteEmployee(ctx, employee.ID); err != nil {
			return err
		}

		user, err := repos.Users.FindUserByEmail(ctx, employee.Email)
		switch {
		case err == nil:
			if err = repos.OTPs.DeleteUserOTPs(ctx, user.ID); err != nil {
				return err
			}
			if err = repos.Users.DeleteUserByEmail(ctx, user.Email); err != nil {
				return err
			}
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}

		// пользователь уже удалён, поэтому user_id будет null
		return e.audit.write(ctx, repos, models.ActionEmployeeDeleted, employee.UserID, employee.Email)
	})
	if errors.Is(err, store.ErrEmployeeNotFound) {
		return fmt.Errorf("%w: employee %q", ErrNotFound, id)
	}
	if err != nil {
		log.Err(err).Str("func", "*employeeService.DeleteEmployee").Str("employee_id", id).Msg("employee deletion failed")
		return dependency(err)
	}

	log.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}
