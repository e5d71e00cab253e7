package validators

import (
	"regexp"
	"unicode"

	"github.com/MKhiriev/go-erp-auth/models"
	"github.com/go-playground/validator/v10"
)

const (
	TagPhone          = "phone"
	TagEmployeeStatus = "employee_status"
	TagStrongPassword = "strong_password"

	minStrongPasswordLength = 8
)

var phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// validatePhone accepts E.164-like numbers. Spaces, dashes and parentheses
// are ignored.
func validatePhone(fl validator.FieldLevel) bool {
	phone := make([]rune, 0, len(fl.Field().String()))
	for _, r := range fl.Field().String() {
		switch r {
		case ' ', '-', '(', ')':
			continue
		}
		phone = append(phone, r)
	}
	return phoneRegexp.MatchString(string(phone))
}

func validateEmployeeStatus(fl validator.FieldLevel) bool {
	switch models.EmployeeStatus(fl.Field().String()) {
	case models.EmployeeActive, models.EmployeeInactive:
		return true
	}
	return false
}

// validateStrongPassword: at least 8 characters, one upper-case letter and
// one digit.
func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether password satisfies the password policy
// applied on password change.
func IsStrongPassword(password string) bool {
	var (
		length   int
		hasUpper bool
		hasDigit bool
	)
	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return length >= minStrongPasswordLength && hasUpper && hasDigit
}
