package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/internal/validators"
	"github.com/MKhiriev/go-erp-auth/models"
)

type EmployeeValidationService struct {
	inner     EmployeeService
	validator validators.Validator
}

func NewEmployeeValidationService() EmployeeServiceWrapper {
	return &EmployeeValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *EmployeeValidationService) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.HireDate = strings.TrimSpace(req.HireDate)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Employee{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.CreateEmployee(ctx, req)
}

func (v *EmployeeValidationService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return v.inner.ListEmployees(ctx)
}

func (v *EmployeeValidationService) DeleteEmployee(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: employee id is required", ErrValidation)
	}
	// такой id не мог быть выдан, значит и сотрудника нет
	if !utils.IsValidID(id) {
		return fmt.Errorf("%w: employee %q", ErrNotFound, id)
	}

	return v.inner.DeleteEmployee(ctx, id)
}

func (v *EmployeeValidationService) Wrap(wrapped EmployeeService) EmployeeService {
	v.inner = wrapped
	return v
}
