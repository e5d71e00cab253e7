// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates request models by their `validate` struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a [RequestValidator] with the domain rules
// registered. It panics if a rule cannot be registered, which only happens
// on a programming error.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		TagPhone:          validatePhone,
		TagEmployeeStatus: validateEmployeeStatus,
		TagStrongPassword: validateStrongPassword,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}

	return &RequestValidator{validate: v}
}

// Validate implements [Validator]. When fields are given only those struct
// fields are checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", ErrValidationFailed, describe(verrs))
	}

	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case TagPhone:
		return field + " must be a valid phone number"
	case TagEmployeeStatus:
		return field + " must be Activo or Inactivo"
	case TagStrongPassword:
		return field + " must have at least 8 characters, one upper-case letter and one digit"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
