package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/MKhiriev/go-erp-auth/models"
)

type fileEmployeeRepository struct {
	fileRepository
}

func (r *fileEmployeeRepository) CreateEmployee(ctx context.Context, employee models.Employee) error {
	return r.run(ctx, func(s *fileSession) error {
		employees, err := s.employees.get()
		if err != nil {
			return err
		}

		if slices.ContainsFunc(employees, func(e models.Employee) bool { return e.Email == employee.Email }) {
			return ErrEmployeeAlreadyExists
		}

		s.employees.set(append(employees, employee))
		return nil
	})
}

func (r *fileEmployeeRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var list []models.Employee
	err := r.run(ctx, func(s *fileSession) error {
		employees, err := s.employees.get()
		if err != nil {
			return err
		}

		list = slices.Clone(employees)
		slices.SortStableFunc(list, func(a, b models.Employee) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
		return nil
	})

	return list, err
}

func (r *fileEmployeeRepository) FindEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	return r.find(ctx, func(e models.Employee) bool { return e.ID == id })
}

func (r *fileEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (models.Employee, error) {
	return r.find(ctx, func(e models.Employee) bool { return e.Email == email })
}

func (r *fileEmployeeRepository) find(ctx context.Context, match func(models.Employee) bool) (models.Employee, error) {
	var found models.Employee
	err := r.run(ctx, func(s *fileSession) error {
		employees, err := s.employees.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(employees, match)
		if idx < 0 {
			return ErrEmployeeNotFound
		}
		found = employees[idx]
		return nil
	})

	return found, err
}

func (r *fileEmployeeRepository) SetMustChangePassword(ctx context.Context, email string, mustChange bool) error {
	return r.run(ctx, func(s *fileSession) error {
		employees, err := s.employees.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(employees, func(e models.Employee) bool { return e.Email == email })
		if idx < 0 {
			return ErrEmployeeNotFound
		}
		employees[idx].MustChangePassword = mustChange
		s.employees.set(employees)
		return nil
	})
}

func (r *fileEmployeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	return r.run(ctx, func(s *fileSession) error {
		employees, err := s.employees.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(employees, func(e models.Employee) bool { return e.ID == id })
		if idx < 0 {
			return ErrEmployeeNotFound
		}
		s.employees.set(slices.Delete(employees, idx, idx+1))
		return nil
	})
}
