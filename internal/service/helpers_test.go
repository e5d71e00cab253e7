package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/crypto"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/mock"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// cheap parameters keep the tests fast
var testHashParams = crypto.Argon2Params{Time: 1, Memory: 8 * 1024, Parallelism: 1, SaltLength: 16, KeyLength: 32}

var testAppConfig = config.App{
	OTPLength:      6,
	OTPTTL:         10 * time.Minute,
	OTPMaxAttempts: 3,
	AuditRetention: 500,
	TokenSignKey:   "test-sign-key",
	TokenIssuer:    "go-erp-auth",
	TokenDuration:  time.Hour,
	Version:        "test",
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	storage store.Storage
	sender  *mock.MockEmailSender
	clock   *fakeClock
	deps    Deps
}

// newTestEnv builds deps on a file store in a temp dir. The email sender
// accepts any message unless the test sets its own expectations first.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(t, fileStorage(t))
}

func newTestEnvOn(t *testing.T, storage store.Storage) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	sender := mock.NewMockEmailSender(ctrl)
	clock := newFakeClock()

	return &testEnv{
		storage: storage,
		sender:  sender,
		clock:   clock,
		deps: Deps{
			Storage: storage,
			Sender:  sender,
			Hasher:  crypto.NewArgon2Hasher(testHashParams),
			Now:     clock.Now,
		},
	}
}

func fileStorage(t *testing.T) store.Storage {
	t.Helper()

	db, err := store.NewFileDB(t.TempDir(), testAppConfig.AuditRetention, logger.Nop())
	require.NoError(t, err)
	return store.NewFileStorage(db, logger.Nop())
}

// sqliteStorage opens a migrated SQLite database through NewStorage, the
// same path the server takes in sqlite mode.
func sqliteStorage(t *testing.T) store.Storage {
	t.Helper()

	cfg := config.Storage{
		Mode: config.StorageModeSQLite,
		DB:   config.DB{DSN: "file:" + filepath.Join(t.TempDir(), "erp.db")},
	}
	storage, err := store.NewStorage(context.Background(), cfg, testAppConfig.AuditRetention, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

// backends runs a flow against every storage implementation.
var backends = []struct {
	name string
	open func(t *testing.T) store.Storage
}{
	{name: "file", open: fileStorage},
	{name: "sqlite", open: sqliteStorage},
}

func (e *testEnv) allowEmails() {
	e.sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (e *testEnv) authService(cfg config.App) AuthService {
	return NewAuthValidationService().Wrap(NewAuthService(e.deps, cfg, logger.Nop()))
}

func (e *testEnv) employeeService() EmployeeService {
	return NewEmployeeValidationService().Wrap(NewEmployeeService(e.deps, logger.Nop()))
}

func (e *testEnv) latestOTP(t *testing.T, email string) models.OTP {
	t.Helper()
	ctx := context.Background()

	user, err := e.storage.Repos().Users.FindUserByEmail(ctx, email)
	require.NoError(t, err)
	otp, err := e.storage.Repos().OTPs.FindLatestOTP(ctx, user.ID)
	require.NoError(t, err)
	return otp
}

func (e *testEnv) auditActions(t *testing.T) []models.AuditAction {
	t.Helper()

	events, err := e.storage.Repos().Audit.ListAuditEvents(context.Background(), 1000)
	require.NoError(t, err)

	// newest first -> chronological
	actions := make([]models.AuditAction, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		actions = append(actions, events[i].Action)
	}
	return actions
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func clientCtx() context.Context {
	return utils.WithClientInfo(context.Background(), models.ClientInfo{IP: "203.0.113.7", UserAgent: "test-agent"})
}
