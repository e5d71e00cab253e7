package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-erp-auth/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, models.Result{Success: true, Message: "ok"}, http.StatusCreated)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}
	if w.Body.String() != `{"success":true,"message":"ok"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	if _, err := WriteJSON(w, nil, http.StatusOK); err != nil {
		t.Fatalf("expected no error for nil data, got: %v", err)
	}
	if w.Body.String() != "null" {
		t.Errorf("expected body 'null', got '%s'", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		empty   bool
	}{
		{name: "valid", body: `{"email":"ana@example.com","password":"secret123"}`},
		{name: "empty", body: "", wantErr: true, empty: true},
		{name: "malformed", body: `{"email":`, wantErr: true},
		{name: "trailing data", body: `{"email":"a"} {"email":"b"}`, wantErr: true},
		{name: "wrong type", body: `{"email":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))

			var req models.LoginRequest
			err := DecodeJSON(r, &req)

			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if tt.empty && !errors.Is(err, ErrEmptyBody) {
				t.Fatalf("expected ErrEmptyBody, got %v", err)
			}
			if !tt.wantErr && req.Email != "ana@example.com" {
				t.Fatalf("unexpected decoded value %+v", req)
			}
		})
	}
}

func TestDecodeJSON_NoBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)

	var req models.LoginRequest
	if err := DecodeJSON(r, &req); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}
