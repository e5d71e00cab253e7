package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// withBufferLogger attaches a JSON logger writing into buf, the same way
// withTraceID attaches the request logger.
func withBufferLogger(r *http.Request, buf *bytes.Buffer) *http.Request {
	l := zerolog.New(buf).With().Timestamp().Logger()
	return r.WithContext(l.WithContext(r.Context()))
}

// accessEntries decodes every JSON line written into buf.
func accessEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestWithLogging_AccessEntry(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		handler   http.HandlerFunc
		wantLevel string
		wantCode  float64
		wantSize  float64
	}{
		{
			name:   "login ok",
			method: http.MethodPost,
			target: pathLogin,
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":true}`))
			},
			wantLevel: "info",
			wantCode:  http.StatusOK,
			wantSize:  16,
		},
		{
			name:   "client error stays at info",
			method: http.MethodPost,
			target: pathRegister,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
			},
			wantLevel: "info",
			wantCode:  http.StatusConflict,
		},
		{
			name:   "server error is a warning",
			method: http.MethodGet,
			target: pathUsersCount,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantLevel: "warn",
			wantCode:  http.StatusInternalServerError,
			wantSize:  21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}
			req := withBufferLogger(httptest.NewRequest(tt.method, tt.target, nil), &buf)
			rec := httptest.NewRecorder()

			h.withLogging(tt.handler).ServeHTTP(rec, req)

			entries := accessEntries(t, &buf)
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.target, entry["path"])
			assert.Equal(t, tt.wantCode, entry["status"])
			assert.Equal(t, tt.wantSize, entry["size"])
			assert.Contains(t, entry, "duration")
			assert.Equal(t, "", entry["route"], "no chi router in front")
		})
	}
}

func TestWithLogging_RoutePatternAndNoQuery(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, withBufferLogger(r, &buf))
		})
	})
	router.Use(h.withLogging)
	router.Get(pathUser, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/user/ana@x.com?debug=1", nil))

	entries := accessEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, pathUser, entries[0]["route"])
	assert.Equal(t, "/api/user/ana@x.com", entries[0]["path"])
	assert.NotContains(t, buf.String(), "debug=1")
}

func TestWithLogging_PassesResponseThrough(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	rec := httptest.NewRecorder()

	h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"userId":"u1"}`))
	})).ServeHTTP(rec, injectNopLogger(httptest.NewRequest(http.MethodPost, pathRegister, nil)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"userId":"u1"}`, rec.Body.String())
}

func TestWithLogging_WithoutRequestLogger(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pathHealth, nil))
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
