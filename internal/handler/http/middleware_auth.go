package http

import (
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It reads the bearer token from the "Authorization" header, validates it via
// [service.TokenService.ParseToken] and stores the user id and role in the
// request context with [utils.WithSession].
//
// Requests without a header, with a malformed header or with an expired or
// forged token are rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			writeResult(w, r, "*Handler.auth", models.Result{Message: app.MsgAuthorizationRequired}, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			writeResult(w, r, "*Handler.auth", models.Result{Message: err.Error()}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSession(ctx, token)))
	})
}

// requireAdmin must run after auth. It rejects sessions whose role claim is
// not admin with 403 Forbidden.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok || !session.IsAdmin() {
			logger.FromRequest(r).Warn().
				Err(ErrAdminRoleRequired).
				Str("func", "*Handler.requireAdmin").
				Str("user_id", session.UserID).
				Send()
			writeResult(w, r, "*Handler.requireAdmin", models.Result{Message: app.MsgAdminRoleRequired}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
