// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/models"
)

var (
	pgBuilder     = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildInsertUserQuery_Placeholders(t *testing.T) {
	user := models.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: models.RoleUser}

	tests := []struct {
		name        string
		builder     sq.StatementBuilderType
		placeholder string
	}{
		{name: "postgres", builder: pgBuilder, placeholder: "$8"},
		{name: "sqlite", builder: sqliteBuilder, placeholder: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildInsertUserQuery(tt.builder, user)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "INSERT INTO users"))
			assert.Contains(t, query, tt.placeholder)
			for _, c := range userColumns {
				assert.Contains(t, query, c)
			}
			require.Len(t, args, len(userColumns))
			assert.Equal(t, "user", args[5])
		})
	}
}

func Test_buildSelectLatestOTPQuery(t *testing.T) {
	query, args, err := buildSelectLatestOTPQuery(pgBuilder, "u1")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, user_id, code, attempts, max_attempts, expires_at, created_at FROM otp WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1",
		query)
	assert.Equal(t, []any{"u1"}, args)
}

func Test_buildDeleteExpiredOTPsQuery(t *testing.T) {
	now := time.Now()

	query, args, err := buildDeleteExpiredOTPsQuery(sqliteBuilder, now)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM otp WHERE expires_at <= ?", query)
	assert.Equal(t, []any{now}, args)
}

func Test_buildInsertAuditQuery_UserID(t *testing.T) {
	id := "u1"

	tests := []struct {
		name   string
		userID *string
		want   any
	}{
		{name: "null user", userID: nil, want: nil},
		{name: "known user", userID: &id, want: "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args, err := buildInsertAuditQuery(pgBuilder, models.AuditEvent{ID: "a1", UserID: tt.userID})
			require.NoError(t, err)
			require.Len(t, args, len(auditColumns))
			assert.Equal(t, tt.want, args[1])
		})
	}
}

func Test_buildTrimAuditQuery(t *testing.T) {
	query, args, err := buildTrimAuditQuery(pgBuilder, 500)
	require.NoError(t, err)

	assert.Equal(t,
		"DELETE FROM audit_logs WHERE id NOT IN (SELECT id FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT $1)",
		query)
	assert.Equal(t, []any{500}, args)
}

func Test_buildSelectEmployeesQuery(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		query, args, err := buildSelectEmployeesQuery(pgBuilder, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(query, "FROM employees ORDER BY created_at DESC, id DESC"))
		assert.Empty(t, args)
	})

	t.Run("by email", func(t *testing.T) {
		query, args, err := buildSelectEmployeesQuery(pgBuilder, sq.Eq{"email": "bob@x.com"})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(query, "FROM employees WHERE email = $1 LIMIT 1"))
		assert.Equal(t, []any{"bob@x.com"}, args)
	})
}

func Test_buildCountQuery(t *testing.T) {
	query, args, err := buildCountQuery(pgBuilder, "analytics_tracking")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM analytics_tracking", query)
	assert.Empty(t, args)
}
