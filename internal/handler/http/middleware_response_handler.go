package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// recordResponse wraps w so that the access log and the request metrics can
// read the status and body size once the handler chain has returned.
func recordResponse(w http.ResponseWriter, r *http.Request) middleware.WrapResponseWriter {
	if ww, ok := w.(middleware.WrapResponseWriter); ok {
		return ww
	}
	return middleware.NewWrapResponseWriter(w, r.ProtoMajor)
}

// responseStatus reports 200 for a handler that wrote nothing at all.
func responseStatus(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
