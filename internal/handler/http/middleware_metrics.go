package http

import (
	"net/http"
	"time"
)

// unmatchedRoute labels requests that matched no registered pattern so that
// arbitrary paths do not blow up the label cardinality.
const unmatchedRoute = "unmatched"

func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := recordResponse(w, r)

		next.ServeHTTP(rw, r)

		route := routePattern(r)
		if route == "" {
			route = unmatchedRoute
		}

		h.metrics.ObserveHTTPRequest(r.Method, route, responseStatus(rw), time.Since(start))
	})
}
