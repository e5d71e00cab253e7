package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

// CheckHTTPMethod is installed as the router's MethodNotAllowed handler.
// A known path called with a method it does not serve gets the same 404 as
// an unknown path, so callers cannot probe which routes exist.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router chi.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// chi also lands here when a sub-router rejected the method but the
		// top-level tree serves it
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("method not served on this path")
		writeResult(w, r, "CheckHTTPMethod", models.Result{Message: app.MsgNotFound}, http.StatusNotFound)
	}
}
