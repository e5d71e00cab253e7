package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/service"
	"github.com/MKhiriev/go-erp-auth/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	verifyOTPFn      func(ctx context.Context, req models.VerifyOTPRequest) (models.OTPResult, error)
	changePasswordFn func(ctx context.Context, req models.ChangePasswordRequest) (models.Result, error)
	getUserFn        func(ctx context.Context, email string) (models.UserView, error)
	countUsersFn     func(ctx context.Context) (int, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.OTPResult, error) {
	return m.verifyOTPFn(ctx, req)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.Result, error) {
	return m.changePasswordFn(ctx, req)
}

func (m *mockAuthService) GetUser(ctx context.Context, email string) (models.UserView, error) {
	return m.getUserFn(ctx, email)
}

func (m *mockAuthService) CountUsers(ctx context.Context) (int, error) {
	return m.countUsersFn(ctx)
}

type mockTokenService struct {
	createTokenFn func(ctx context.Context, user models.UserView) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockTokenService) CreateToken(ctx context.Context, user models.UserView) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockTokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockEmployeeService struct {
	createFn func(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error)
	listFn   func(ctx context.Context) ([]models.Employee, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockEmployeeService) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
	return m.createFn(ctx, req)
}

func (m *mockEmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return m.listFn(ctx)
}

func (m *mockEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockAuditService struct {
	listFn  func(ctx context.Context, limit int) ([]models.AuditEvent, error)
	countFn func(ctx context.Context) (int, error)
}

func (m *mockAuditService) List(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	return m.listFn(ctx, limit)
}

func (m *mockAuditService) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

type mockAnalyticsService struct {
	trackFn   func(ctx context.Context, req models.TrackVisitRequest) error
	summaryFn func(ctx context.Context, days int) (models.VisitSummary, error)
}

func (m *mockAnalyticsService) TrackVisit(ctx context.Context, req models.TrackVisitRequest) error {
	return m.trackFn(ctx, req)
}

func (m *mockAnalyticsService) Summary(ctx context.Context, days int) (models.VisitSummary, error) {
	return m.summaryFn(ctx, days)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(m.version, "N/A", "N/A")
}

type mockHealthService struct {
	err error
}

func (m *mockHealthService) Ping(_ context.Context) error {
	return m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestServices returns a Services value with an AppInfoService and a
// healthy HealthService; tests fill in the services they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		AppInfoService: &mockAppInfoService{version: "test"},
		HealthService:  &mockHealthService{},
	}
}

// newTestRouterWith builds the full router over svcs with the given config.
func newTestRouterWith(t *testing.T, svcs *service.Services, cfg config.StructuredConfig) http.Handler {
	t.Helper()
	return NewHandler(svcs, nil, cfg, logger.Nop()).Init()
}

// serve sends a request through h and returns the recorder.
func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// toJSON serialises v to a request body string.
func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeBody unmarshals the recorder body into a value of type T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}
