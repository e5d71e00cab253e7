package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/models"
)

const (
	pathRegister       = "/api/register"
	pathLogin          = "/api/login"
	pathVerifyOTP      = "/api/verify-otp"
	pathChangePassword = "/api/change-password"
	pathUser           = "/api/user/{email}"
	pathUsersCount     = "/api/users/count"
	pathEmployees      = "/api/employees"
	pathEmployee       = "/api/employees/{id}"
	pathAudit          = "/api/audit"
	pathTrackVisit     = "/api/analytics/track"
	pathVisitSummary   = "/api/analytics/summary"
	pathVersion        = "/api/version"
	pathHealth         = "/healthz"
	pathMetrics        = "/metrics"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(h.cors())

	// service endpoints
	router.Get(pathHealth, h.healthz)
	router.Method(http.MethodGet, pathMetrics, h.metrics.Handler())
	router.Get(pathVersion, h.getServerVersion)

	router.Group(func(r chi.Router) {
		if h.server.RateLimit > 0 {
			r.Use(h.rateLimit())
		}
		if h.server.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.server.RequestTimeout))
		}
		r.Use(middleware.Compress(5, "application/json"))
		r.Use(withGZipRequest)
		r.Use(withClientInfo)

		// routes without authorization
		r.Post(pathRegister, h.register)
		r.Post(pathLogin, h.login)
		r.Post(pathVerifyOTP, h.verifyOTP)
		r.Post(pathChangePassword, h.changePassword)
		r.Get(pathUser, h.getUser)
		r.Get(pathUsersCount, h.countUsers)
		r.Post(pathTrackVisit, h.trackVisit)
		r.Get(pathVisitSummary, h.visitSummary)

		// administrative routes
		r.Group(func(r chi.Router) {
			if h.protectAdminRoutes {
				r.Use(h.auth, h.requireAdmin)
			}

			r.Get(pathEmployees, h.listEmployees)
			r.Post(pathEmployees, h.createEmployee)
			r.Delete(pathEmployee, h.deleteEmployee)
			r.Get(pathAudit, h.listAudit)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) cors() func(http.Handler) http.Handler {
	origins := h.server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// rateLimit bounds API requests per client IP over a one-minute window.
func (h *Handler) rateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(
		h.server.RateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeResult(w, r, "*Handler.rateLimit", models.Result{Message: app.MsgTooManyRequests}, http.StatusTooManyRequests)
		}),
	)
}
