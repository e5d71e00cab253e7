package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/service"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// writeError answers with the status and message mapped from err. A wrong
// OTP additionally reports the attempts left.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	event := log.Info()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	body := models.OTPResult{Result: models.Result{Success: false, Message: messageFromError(err, status)}}

	var invalid *service.InvalidCodeError
	if errors.As(err, &invalid) {
		left := invalid.AttemptsLeft
		body.AttemptsLeft = &left
	}
	if errors.Is(err, service.ErrAttemptsExceeded) {
		left := 0
		body.AttemptsLeft = &left
	}

	if _, werr := utils.WriteJSON(w, body, status); werr != nil {
		log.Err(werr).Str("func", funcName).Msg("error writing response")
	}
}

func writeBadJSON(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
	utils.WriteJSON(w, models.Result{Success: false, Message: app.MsgInvalidJSON}, http.StatusBadRequest)
}

func writeResult(w http.ResponseWriter, r *http.Request, funcName string, body any, status int) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("error writing response")
	}
}
