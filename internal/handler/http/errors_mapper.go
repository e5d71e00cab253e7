package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/service"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:       http.StatusBadRequest,
	service.ErrInvalidCode:      http.StatusBadRequest,
	service.ErrAuthentication:   http.StatusUnauthorized,
	service.ErrNotFound:         http.StatusNotFound,
	service.ErrConflict:         http.StatusConflict,
	service.ErrExpired:          http.StatusGone,
	service.ErrAttemptsExceeded: http.StatusTooManyRequests,
	service.ErrTooManyAttempts:  http.StatusTooManyRequests,
	service.ErrDependency:       http.StatusInternalServerError,

	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	utils.ErrEmptyBody:   http.StatusBadRequest,
	ErrInvalidQueryParam: http.StatusBadRequest,
}

// errorMessageMap holds the client-facing message per error. Errors not
// listed here expose their own text only for 4xx statuses.
var errorMessageMap = map[error]string{
	service.ErrInvalidCode:      app.MsgOTPInvalid,
	service.ErrAuthentication:   app.MsgInvalidCredentials,
	service.ErrConflict:         app.MsgEmailAlreadyRegistered,
	service.ErrExpired:          app.MsgOTPExpired,
	service.ErrAttemptsExceeded: app.MsgOTPAttemptsExceeded,
	service.ErrTooManyAttempts:  app.MsgTooManyLoginAttempts,

	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
	utils.ErrEmptyBody:                 app.MsgInvalidJSON,
	ErrInvalidQueryParam:               app.MsgInvalidQueryParam,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError never leaks server-side failure details.
func messageFromError(err error, status int) string {
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	if status >= http.StatusInternalServerError {
		return app.MsgInternalServerError
	}
	return err.Error()
}
