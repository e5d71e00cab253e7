package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

func newTestFileStorage(t *testing.T, retention int) (Storage, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := NewFileDB(dir, retention, logger.Nop())
	require.NoError(t, err)
	return NewFileStorage(db, logger.Nop()), dir
}

func TestFileDB_MissingFilesReadAsEmpty(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	ctx := context.Background()

	n, err := storage.Repos().Users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	events, err := storage.Repos().Audit.ListAuditEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFileDB_CorruptFile(t *testing.T) {
	storage, dir := newTestFileStorage(t, 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o600))

	_, err := storage.Repos().Users.CountUsers(context.Background())
	assert.ErrorIs(t, err, ErrReadingCollection)
}

func TestFileDB_WritesOnlyChangedCollections(t *testing.T) {
	storage, dir := newTestFileStorage(t, 0)

	require.NoError(t, storage.Repos().Users.CreateUser(context.Background(), models.User{ID: "u1", Email: "ana@x.com"}))

	assert.FileExists(t, filepath.Join(dir, "users.json"))
	assert.NoFileExists(t, filepath.Join(dir, "otp.json"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestFileUserRepository(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	users := storage.Repos().Users
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
	require.NoError(t, users.CreateUser(ctx, user))
	assert.ErrorIs(t, users.CreateUser(ctx, models.User{ID: "u2", Email: "ana@x.com"}), ErrUserAlreadyExists)

	user.Verified = true
	user.PasswordHash = "new-hash"
	require.NoError(t, users.UpdateUser(ctx, user))

	found, err := users.FindUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, found.Verified)
	assert.Equal(t, "new-hash", found.PasswordHash)

	_, err = users.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, users.UpdateUser(ctx, models.User{ID: "nope"}), ErrUserNotFound)
}

func TestFileUserRepository_DeleteCascades(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	repos := storage.Repos()
	ctx := context.Background()
	userID := "u1"

	require.NoError(t, repos.Users.CreateUser(ctx, models.User{ID: userID, Email: "bob@x.com"}))
	require.NoError(t, repos.OTPs.CreateOTP(ctx, models.OTP{ID: "o1", UserID: userID}))
	require.NoError(t, repos.Audit.CreateAuditEvent(ctx, models.AuditEvent{ID: "a1", UserID: &userID}))
	require.NoError(t, repos.Employees.CreateEmployee(ctx, models.Employee{ID: "e1", UserID: userID, Email: "bob@x.com"}))

	require.NoError(t, repos.Users.DeleteUserByEmail(ctx, "bob@x.com"))
	assert.ErrorIs(t, repos.Users.DeleteUserByEmail(ctx, "bob@x.com"), ErrUserNotFound)

	_, err := repos.OTPs.FindLatestOTP(ctx, userID)
	assert.ErrorIs(t, err, ErrOTPNotFound)

	events, err := repos.Audit.ListAuditEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].UserID)

	employee, err := repos.Employees.FindEmployeeByID(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, employee.UserID)
}

func TestFileOTPRepository(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	otps := storage.Repos().OTPs
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, otps.CreateOTP(ctx, models.OTP{ID: "o1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, otps.CreateOTP(ctx, models.OTP{ID: "o2", UserID: "u1", CreatedAt: now.Add(time.Second), ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, otps.CreateOTP(ctx, models.OTP{ID: "o3", UserID: "u2", CreatedAt: now, ExpiresAt: now}))

	latest, err := otps.FindLatestOTP(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "o2", latest.ID)

	require.NoError(t, otps.UpdateOTPAttempts(ctx, "o2", 2))
	latest, err = otps.FindLatestOTP(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Attempts)

	// o3 expires exactly now, o1 a minute later
	removed, err := otps.DeleteExpiredOTPs(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, otps.DeleteUserOTPs(ctx, "u1"))
	_, err = otps.FindLatestOTP(ctx, "u1")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestFileAuditRepository_RetentionAndOrder(t *testing.T) {
	storage, _ := newTestFileStorage(t, 3)
	audit := storage.Repos().Audit
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		require.NoError(t, audit.CreateAuditEvent(ctx, models.AuditEvent{
			ID: id, Action: models.ActionLoginFailed, Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	total, err := audit.CountAuditEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	events, err := audit.ListAuditEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a5", events[0].ID)
	assert.Equal(t, "a4", events[1].ID)

	removed, err := audit.TrimAuditEvents(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestFileEmployeeRepository(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	employees := storage.Repos().Employees
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, employees.CreateEmployee(ctx, models.Employee{ID: "e1", Email: "a@x.com", CreatedAt: now, MustChangePassword: true}))
	require.NoError(t, employees.CreateEmployee(ctx, models.Employee{ID: "e2", Email: "b@x.com", CreatedAt: now.Add(time.Second)}))
	assert.ErrorIs(t, employees.CreateEmployee(ctx, models.Employee{ID: "e3", Email: "a@x.com"}), ErrEmployeeAlreadyExists)

	list, err := employees.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e2", list[0].ID)

	require.NoError(t, employees.SetMustChangePassword(ctx, "a@x.com", false))
	e1, err := employees.FindEmployeeByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, e1.MustChangePassword)

	require.NoError(t, employees.DeleteEmployee(ctx, "e1"))
	assert.ErrorIs(t, employees.DeleteEmployee(ctx, "e1"), ErrEmployeeNotFound)
}

func TestFileVisitRepository(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	visits := storage.Repos().Visits
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, visits.CreateVisit(ctx, models.Visit{ID: "v1", Path: "/", Timestamp: now.Add(-48 * time.Hour)}))
	require.NoError(t, visits.CreateVisit(ctx, models.Visit{ID: "v2", Path: "/login", Timestamp: now}))

	n, err := visits.CountVisits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ts, err := visits.VisitTimestampsSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.True(t, ts[0].Equal(now))
}

func TestFileStorage_WithTx_RollbackLeavesNoTrace(t *testing.T) {
	storage, dir := newTestFileStorage(t, 0)
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := storage.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.CreateUser(ctx, models.User{ID: "u1", Email: "ana@x.com"}); err != nil {
			return err
		}
		if err := repos.OTPs.CreateOTP(ctx, models.OTP{ID: "o1", UserID: "u1"}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	assert.NoFileExists(t, filepath.Join(dir, "users.json"))
	n, err := storage.Repos().Users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFileStorage_WithTx_Commit(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	ctx := context.Background()

	err := storage.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.CreateUser(ctx, models.User{ID: "u1", Email: "ana@x.com"}); err != nil {
			return err
		}
		// reads inside the unit of work see its own writes
		if _, err := repos.Users.FindUserByEmail(ctx, "ana@x.com"); err != nil {
			return err
		}
		return repos.OTPs.CreateOTP(ctx, models.OTP{ID: "o1", UserID: "u1"})
	})
	require.NoError(t, err)

	otp, err := storage.Repos().OTPs.FindLatestOTP(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "o1", otp.ID)
}

func TestFileStorage_ConcurrentCreateUser(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	ctx := context.Background()

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := storage.Repos().Users.CreateUser(ctx, models.User{ID: string(rune('a' + i)), Email: "same@x.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrUserAlreadyExists):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestFileStorage_CanceledContext(t *testing.T) {
	storage, _ := newTestFileStorage(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, storage.Repos().Users.CreateUser(ctx, models.User{ID: "u1"}), context.Canceled)
}
