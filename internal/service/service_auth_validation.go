package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-erp-auth/internal/validators"
	"github.com/MKhiriev/go-erp-auth/models"
)

// AuthValidationService checks request shape before the call reaches the
// wrapped AuthService. Business rules that need stored state stay in the
// inner service.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.RegisterResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.OTPResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.OTPResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.VerifyOTP(ctx, req)
}

// ChangePassword validates only the email here: an unknown user must be
// reported as not found before the password policy is applied.
func (v *AuthValidationService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.Result, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := v.validator.Validate(ctx, req, "Email"); err != nil {
		return models.Result{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.ChangePassword(ctx, req)
}

func (v *AuthValidationService) GetUser(ctx context.Context, email string) (models.UserView, error) {
	if strings.TrimSpace(email) == "" {
		return models.UserView{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	return v.inner.GetUser(ctx, email)
}

func (v *AuthValidationService) CountUsers(ctx context.Context) (int, error) {
	return v.inner.CountUsers(ctx)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
