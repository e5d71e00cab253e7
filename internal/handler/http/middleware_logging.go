package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// withLogging writes one access entry per request. The route pattern is
// logged next to the path, so /api/user/{email} entries can be grouped.
// Server errors are logged at warn level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := recordResponse(w, r)

		next.ServeHTTP(lw, r)

		status := responseStatus(lw)
		log := logger.FromRequest(r)
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", routePattern(r)).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("size", lw.BytesWritten()).
			Dur("duration", time.Since(start)).
			Send()
	})
}

// routePattern returns the matched chi pattern or "" outside a chi router.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
