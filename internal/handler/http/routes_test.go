package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/service"
	"github.com/MKhiriev/go-erp-auth/models"
)

// ---- Stub services: every call succeeds ----

func newStubServices() *service.Services {
	svcs := newTestServices()
	svcs.AuthService = &mockAuthService{
		registerFn: func(context.Context, models.RegisterRequest) (models.RegisterResult, error) {
			return models.RegisterResult{Result: models.Result{Success: true}, UserID: "u-1"}, nil
		},
		loginFn: func(context.Context, models.LoginRequest) (models.LoginResult, error) {
			return models.LoginResult{Result: models.Result{Success: true}, RequiresOTP: true, UserID: "u-1"}, nil
		},
		verifyOTPFn: func(context.Context, models.VerifyOTPRequest) (models.OTPResult, error) {
			return models.OTPResult{Result: models.Result{Success: true}}, nil
		},
		changePasswordFn: func(context.Context, models.ChangePasswordRequest) (models.Result, error) {
			return models.Result{Success: true}, nil
		},
		getUserFn: func(_ context.Context, email string) (models.UserView, error) {
			return models.UserView{ID: "u-1", Email: email}, nil
		},
		countUsersFn: func(context.Context) (int, error) { return 1, nil },
	}
	svcs.TokenService = &mockTokenService{
		createTokenFn: func(context.Context, models.UserView) (models.Token, error) {
			return stubToken("stub-token"), nil
		},
		parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
			switch s {
			case "admin-token":
				return models.Token{UserID: "admin-1", Role: models.RoleAdmin}, nil
			case "user-token":
				return models.Token{UserID: "u-1", Role: models.RoleUser}, nil
			}
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	svcs.EmployeeService = &mockEmployeeService{
		createFn: func(_ context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
			return models.Employee{ID: "e-1", Email: req.Email}, nil
		},
		listFn:   func(context.Context) ([]models.Employee, error) { return nil, nil },
		deleteFn: func(context.Context, string) error { return nil },
	}
	svcs.AuditService = &mockAuditService{
		listFn:  func(context.Context, int) ([]models.AuditEvent, error) { return nil, nil },
		countFn: func(context.Context) (int, error) { return 0, nil },
	}
	svcs.AnalyticsService = &mockAnalyticsService{
		trackFn: func(context.Context, models.TrackVisitRequest) error { return nil },
		summaryFn: func(context.Context, int) (models.VisitSummary, error) {
			return models.VisitSummary{Days: []models.DailyVisits{}}, nil
		},
	}
	return svcs
}

type routeCase struct {
	method     string
	path       string
	body       string
	wantStatus int
}

var publicRoutes = []routeCase{
	{http.MethodPost, pathRegister, `{"name":"Ana","email":"ana@x.com","password":"secret1"}`, http.StatusCreated},
	{http.MethodPost, pathLogin, `{"email":"ana@x.com","password":"secret1"}`, http.StatusOK},
	{http.MethodPost, pathVerifyOTP, `{"email":"ana@x.com","code":"123456"}`, http.StatusOK},
	{http.MethodPost, pathChangePassword, `{"email":"ana@x.com","newPassword":"Strong123"}`, http.StatusOK},
	{http.MethodGet, "/api/user/ana@x.com", "", http.StatusOK},
	{http.MethodGet, pathUsersCount, "", http.StatusOK},
	{http.MethodPost, pathTrackVisit, `{"path":"/dashboard"}`, http.StatusCreated},
	{http.MethodGet, pathVisitSummary, "", http.StatusOK},
	{http.MethodGet, pathVersion, "", http.StatusOK},
	{http.MethodGet, pathHealth, "", http.StatusOK},
}

var adminRoutes = []routeCase{
	{http.MethodGet, pathEmployees, "", http.StatusOK},
	{http.MethodPost, pathEmployees, `{"name":"Luis","email":"luis@x.com"}`, http.StatusCreated},
	{http.MethodDelete, "/api/employees/e-1", "", http.StatusOK},
	{http.MethodGet, pathAudit, "", http.StatusOK},
}

// ---- Route registration ----

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	for _, rc := range append(publicRoutes, adminRoutes...) {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			rec := serve(router, rc.method, rc.path, rc.body)
			assert.Equal(t, rc.wantStatus, rec.Code, "body: %s", rec.Body.String())
		})
	}
}

// ---- Admin routes ----

func TestInit_AdminRoutes_Protected(t *testing.T) {
	cfg := config.StructuredConfig{App: config.App{ProtectAdminRoutes: true}}
	router := newTestRouterWith(t, newStubServices(), cfg)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "user role", header: "Bearer user-token", wantStatus: http.StatusForbidden},
	}

	for _, rc := range adminRoutes {
		for _, tt := range tests {
			t.Run(tt.name+" "+rc.method+" "+rc.path, func(t *testing.T) {
				req := httptest.NewRequest(rc.method, rc.path, nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				assert.Equal(t, tt.wantStatus, rec.Code)
			})
		}

		t.Run("admin token "+rc.method+" "+rc.path, func(t *testing.T) {
			req := httptest.NewRequest(rc.method, rc.path, nil)
			if rc.body != "" {
				req = httptest.NewRequest(rc.method, rc.path, strings.NewReader(rc.body))
			}
			req.Header.Set("Authorization", "Bearer admin-token")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, rc.wantStatus, rec.Code)
		})
	}
}

func TestInit_PublicRoutes_NotAffectedByAdminProtection(t *testing.T) {
	cfg := config.StructuredConfig{App: config.App{ProtectAdminRoutes: true}}
	router := newTestRouterWith(t, newStubServices(), cfg)

	for _, rc := range publicRoutes {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			rec := serve(router, rc.method, rc.path, rc.body)
			assert.Equal(t, rc.wantStatus, rec.Code)
		})
	}
}

// ---- Unknown routes and wrong methods ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	for _, path := range []string{"/", "/api", "/api/unknown", "/api/employees/e-1/extra"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(router, http.MethodGet, path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, pathRegister},
		{http.MethodPut, pathLogin},
		{http.MethodDelete, pathVerifyOTP},
		{http.MethodPost, "/api/user/ana@x.com"},
		{http.MethodPost, pathUsersCount},
		{http.MethodPut, pathEmployees},
		{http.MethodGet, "/api/employees/e-1"},
		{http.MethodPost, pathAudit},
		{http.MethodPost, pathVersion},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(router, tt.method, tt.path, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, app.MsgNotFound, decodeBody[models.Result](t, rec).Message)
		})
	}
}

// ---- Trace ID ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	rec := serve(router, http.MethodGet, pathVersion, "")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	req := httptest.NewRequest(http.MethodGet, pathUsersCount, nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}

// ---- CORS ----

func TestInit_CORSPreflight(t *testing.T) {
	cfg := config.StructuredConfig{Server: config.Server{CORSOrigins: []string{"https://erp.example.com"}}}
	router := newTestRouterWith(t, newStubServices(), cfg)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, pathLogin, nil)
		req.Header.Set("Origin", "https://erp.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Less(t, rec.Code, http.StatusMultipleChoices)
		assert.Equal(t, "https://erp.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, pathLogin, nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("authorization header exposed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, pathVersion, nil)
		req.Header.Set("Origin", "https://erp.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Authorization")
	})
}

// ---- Rate limit ----

func TestInit_RateLimit(t *testing.T) {
	cfg := config.StructuredConfig{Server: config.Server{RateLimit: 2}}
	router := newTestRouterWith(t, newStubServices(), cfg)

	for i := 0; i < 2; i++ {
		rec := serve(router, http.MethodGet, pathUsersCount, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := serve(router, http.MethodGet, pathUsersCount, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, app.MsgTooManyRequests, decodeBody[models.Result](t, rec).Message)

	// service endpoints are outside the limited group
	rec = serve(router, http.MethodGet, pathHealth, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- Metrics ----

func TestInit_MetricsEndpoint(t *testing.T) {
	m := metrics.New()
	router := NewHandler(newStubServices(), m, config.StructuredConfig{}, logger.Nop()).Init()

	serve(router, http.MethodGet, pathUsersCount, "")
	serve(router, http.MethodGet, "/api/user/ana@x.com", "")
	serve(router, http.MethodGet, "/nowhere", "")

	series, err := testutil.GatherAndCount(m.Registry(), "erp_auth_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series, "one series per route pattern and status")

	rec := serve(router, http.MethodGet, pathMetrics, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `erp_auth_http_requests_total{method="GET",route="/api/users/count",status="200"} 1`)
	assert.Contains(t, body, `erp_auth_http_requests_total{method="GET",route="/api/user/{email}",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched"`)
}

func TestInit_MetricsEndpoint_DisabledWithoutMetrics(t *testing.T) {
	router := newTestRouterWith(t, newStubServices(), config.StructuredConfig{})

	rec := serve(router, http.MethodGet, pathMetrics, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
