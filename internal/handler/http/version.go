package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// writePlain answers with a short text/plain body.
func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writePlain(w, http.StatusOK, h.services.AppInfoService.GetAppVersion(r.Context()))
}

// healthz answers 503 while the storage backend does not respond to a ping.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.services.HealthService == nil {
		writePlain(w, http.StatusOK, "ok")
		return
	}

	if err := h.services.HealthService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.healthz").Msg("storage ping failed")
		writePlain(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	writePlain(w, http.StatusOK, "ok")
}
