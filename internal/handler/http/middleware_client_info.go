package http

import (
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// withClientInfo records the caller's address and user agent in the request
// context for the audit log. It expects middleware.RealIP to run first so
// that RemoteAddr already reflects proxy headers.
func withClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := utils.WithClientInfo(r.Context(), models.ClientInfo{
			IP:        utils.ClientIP(r.RemoteAddr),
			UserAgent: utils.TruncateUserAgent(r.UserAgent()),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
