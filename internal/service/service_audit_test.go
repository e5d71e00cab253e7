package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

func seedAuditEvents(t *testing.T, env *testEnv, n int) {
	t.Helper()
	base := env.clock.Now()
	for i := range n {
		err := env.storage.Repos().Audit.CreateAuditEvent(context.Background(), models.AuditEvent{
			ID:        fmt.Sprintf("evt-%04d", i),
			Email:     models.UnknownEmail,
			Action:    models.ActionLoginFailed,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}

func TestAuditService_List(t *testing.T) {
	env := newTestEnv(t)
	seedAuditEvents(t, env, 150)
	svc := NewAuditService(env.storage, config.App{AuditRetention: 120}, logger.Nop())

	tests := []struct {
		name    string
		limit   int
		wantLen int
		wantErr error
	}{
		{name: "default page", limit: 0, wantLen: DefaultAuditPageSize},
		{name: "explicit", limit: 5, wantLen: 5},
		{name: "capped at retention", limit: 1000, wantLen: 120},
		{name: "negative", limit: -1, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := svc.List(context.Background(), tt.limit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, events, tt.wantLen)
			assert.Equal(t, "evt-0149", events[0].ID, "newest first")
		})
	}

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, n)
}
