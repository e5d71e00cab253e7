package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/store"
)

func TestHousekeeping_SweepExpiredOTPs(t *testing.T) {
	env := newTestEnv(t)
	env.allowEmails()
	auth := env.authService(testAppConfig)

	reg, err := auth.Register(context.Background(), anaRegistration)
	require.NoError(t, err)

	svc := NewHousekeepingService(env.deps, testAppConfig, logger.Nop())

	n, err := svc.SweepExpiredOTPs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	env.clock.Advance(10 * time.Minute)
	n, err = svc.SweepExpiredOTPs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = env.storage.Repos().OTPs.FindLatestOTP(context.Background(), reg.UserID)
	assert.ErrorIs(t, err, store.ErrOTPNotFound)
}

func TestHousekeeping_EnforceAuditRetention(t *testing.T) {
	env := newTestEnv(t)
	seedAuditEvents(t, env, 30)

	svc := NewHousekeepingService(env.deps, config.App{AuditRetention: 10}, logger.Nop())
	n, err := svc.EnforceAuditRetention(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)

	events, err := env.storage.Repos().Audit.ListAuditEvents(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, events, 10)
	assert.Equal(t, "evt-0029", events[0].ID)

	disabled := NewHousekeepingService(env.deps, config.App{}, logger.Nop())
	n, err = disabled.EnforceAuditRetention(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
