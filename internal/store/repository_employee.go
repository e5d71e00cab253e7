package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

type employeeRepository struct {
	logger *logger.Logger
	db     *DB
	q      querier
}

func NewEmployeeRepository(db *DB, logger *logger.Logger) EmployeeRepository {
	logger.Debug().Msg("creating employee repository")
	return &employeeRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func (r *employeeRepository) CreateEmployee(ctx context.Context, employee models.Employee) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertEmployeeQuery(r.db.builder, employee)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.CreateEmployee").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return ErrEmployeeAlreadyExists
		}
		log.Err(err).Str("func", "*employeeRepository.CreateEmployee").Msg("error inserting employee")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListEmployees returns all employees, newest first.
func (r *employeeRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEmployeesQuery(r.db.builder, nil)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.ListEmployees").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.ListEmployees").Msg("error querying employees")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			log.Err(err).Str("func", "*employeeRepository.ListEmployees").Msg("error scanning employee")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return employees, nil
}

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	return r.findEmployee(ctx, sq.Eq{"id": id})
}

func (r *employeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (models.Employee, error) {
	return r.findEmployee(ctx, sq.Eq{"email": email})
}

func (r *employeeRepository) findEmployee(ctx context.Context, where sq.Eq) (models.Employee, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEmployeesQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.findEmployee").Msg("error building query")
		return models.Employee{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	employee, err := scanEmployee(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.findEmployee").Msg("error scanning employee")
		return models.Employee{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return employee, nil
}

func (r *employeeRepository) SetMustChangePassword(ctx context.Context, email string, mustChange bool) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Update(models.Employee{}.TableName()).
		Set("must_change_password", mustChange).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.SetMustChangePassword").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.SetMustChangePassword").Msg("error updating employee")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(models.Employee{}.TableName()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.DeleteEmployee").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", "*employeeRepository.DeleteEmployee").Msg("error deleting employee")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}
