// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHTTPSender создаёт httpEmailSender, направленный на тестовый сервер
func newTestHTTPSender(t *testing.T, serverURL string) EmailSender {
	t.Helper()
	s, err := NewHTTPEmailSender(config.Email{
		APIURL:         serverURL,
		APIKey:         "api-key",
		From:           "noreply@erp.local",
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return s
}

// ── Send ────────────────────────────────────────────────────────────────────

func TestHTTPEmailSender_Send_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/send", r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var msg httpEmailMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "noreply@erp.local", msg.From)
		assert.Equal(t, []string{"ana@example.com"}, msg.To)
		assert.Equal(t, "subject", msg.Subject)
		assert.Equal(t, "<p>body</p>", msg.HTML)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := newTestHTTPSender(t, srv.URL+"/v1/send")
	err := s.Send(context.Background(), "ana@example.com", "subject", "<p>body</p>")

	assert.NoError(t, err)
}

func TestHTTPEmailSender_Send_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{name: "bad request", status: http.StatusBadRequest, target: ErrMessageRejected},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, target: ErrMessageRejected},
		{name: "unauthorized", status: http.StatusUnauthorized, target: ErrProviderAuth},
		{name: "forbidden", status: http.StatusForbidden, target: ErrProviderAuth},
		{name: "wrong endpoint", status: http.StatusNotFound, target: ErrProviderEndpoint},
		{name: "too many requests", status: http.StatusTooManyRequests, target: ErrProviderThrottled},
		{name: "internal", status: http.StatusInternalServerError, target: ErrProviderUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, target: ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("rejected"))
			}))
			defer srv.Close()

			err := newTestHTTPSender(t, srv.URL).Send(context.Background(), "ana@example.com", "s", "b")

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDelivery)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestHTTPEmailSender_Send_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestHTTPSender(t, srv.URL).Send(context.Background(), "ana@example.com", "s", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "unexpected email provider status 418")
}

func TestHTTPEmailSender_Send_InvalidRecipient(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := newTestHTTPSender(t, srv.URL).Send(context.Background(), "ana@example.com\r\nBcc: x@y.z", "s", "b")

	assert.ErrorIs(t, err, ErrInvalidRecipient)
	assert.False(t, called)
}

func TestHTTPEmailSender_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestHTTPSender(t, url).Send(context.Background(), "ana@example.com", "s", "b")

	assert.ErrorIs(t, err, ErrDelivery)
}

// ── NewHTTPEmailSender ──────────────────────────────────────────────────────

func TestNewHTTPEmailSender_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "http://"} {
		_, err := NewHTTPEmailSender(config.Email{APIURL: raw}, logger.Nop())
		assert.Error(t, err, raw)
	}
}

func TestNormalizeURL(t *testing.T) {
	got, err := normalizeURL(" api.mail.local/send/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://api.mail.local/send", got)

	got, err = normalizeURL("http://127.0.0.1:8025")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8025", got)
}

func TestProviderMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "whitespace collapsed", body: "  {\"message\":\n\t\"bad from\"}  ", want: `{"message": "bad from"}`},
		{name: "truncated", body: strings.Repeat("a", maxProviderMessage+10), want: strings.Repeat("a", maxProviderMessage) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, providerMessage([]byte(tt.body)))
		})
	}
}

func TestHTTPEmailSender_Send_ForwardsTraceID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Trace-ID")
	}))
	defer srv.Close()

	ctx := utils.WithTraceID(context.Background(), "trace-42")
	require.NoError(t, newTestHTTPSender(t, srv.URL).Send(ctx, "ana@example.com", "s", "b"))

	assert.Equal(t, "trace-42", got)
}
