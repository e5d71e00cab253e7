package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, "*Handler.register", err)
		return
	}

	res, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	writeResult(w, r, "*Handler.register", res, http.StatusCreated)
}

// login answers with a session token in the Authorization header when no
// OTP is required.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, "*Handler.login", err)
		return
	}

	res, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	if !res.RequiresOTP && res.User != nil {
		if err = h.setSessionToken(w, r, *res.User); err != nil {
			writeError(w, r, "*Handler.login", err)
			return
		}
	}

	writeResult(w, r, "*Handler.login", res, http.StatusOK)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, "*Handler.verifyOTP", err)
		return
	}

	res, err := h.services.AuthService.VerifyOTP(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.verifyOTP", err)
		return
	}

	if res.User != nil {
		if err = h.setSessionToken(w, r, *res.User); err != nil {
			writeError(w, r, "*Handler.verifyOTP", err)
			return
		}
	}

	writeResult(w, r, "*Handler.verifyOTP", res, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, "*Handler.changePassword", err)
		return
	}

	res, err := h.services.AuthService.ChangePassword(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	writeResult(w, r, "*Handler.changePassword", res, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AuthService.GetUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	writeResult(w, r, "*Handler.getUser", models.UserResult{
		Result: models.Result{Success: true},
		User:   &user,
	}, http.StatusOK)
}

func (h *Handler) countUsers(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.AuthService.CountUsers(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.countUsers", err)
		return
	}

	writeResult(w, r, "*Handler.countUsers", models.CountResult{
		Result: models.Result{Success: true},
		Count:  n,
	}, http.StatusOK)
}

func (h *Handler) setSessionToken(w http.ResponseWriter, r *http.Request, user models.UserView) error {
	token, err := h.services.TokenService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("session token issued")
	w.Header().Set("Authorization", token.BearerHeader())
	return nil
}
