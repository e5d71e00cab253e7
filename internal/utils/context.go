// Package utils holds small helpers shared by the transport and service
// layers: request-scoped context values, client address normalisation,
// per-key locking, JSON response writing, the outbound HTTP client, session
// token signing and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-erp-auth/models"
)

// contextKey keeps our values apart from string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// SessionCtxKey holds the verified session token of the caller.
	SessionCtxKey = contextKey("session")

	// ClientInfoCtxKey holds the caller's address and user agent, recorded
	// in audit events.
	ClientInfoCtxKey = contextKey("clientInfo")

	// TraceIDCtxKey holds the request trace id. Outbound calls forward it.
	TraceIDCtxKey = contextKey("traceID")
)

// WithSession stores a verified session token in ctx.
func WithSession(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, SessionCtxKey, token)
}

// GetSessionFromContext returns the session stored by [WithSession]. ok is
// false when the request is anonymous or the token names no user.
func GetSessionFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(SessionCtxKey).(models.Token)
	return token, ok && token.UserID != ""
}

// GetUserIDFromContext returns the user id (the "sub" claim) of the session.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	token, ok := GetSessionFromContext(ctx)
	return token.UserID, ok
}

// GetRoleFromContext returns the role of the session. Without a session
// there is no role, whatever the stored token carries.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	token, ok := GetSessionFromContext(ctx)
	if !ok || token.Role == "" {
		return "", false
	}
	return token.Role, true
}

func WithClientInfo(ctx context.Context, info models.ClientInfo) context.Context {
	return context.WithValue(ctx, ClientInfoCtxKey, info)
}

// GetClientInfoFromContext returns the caller information stored by
// [WithClientInfo], or a zero value.
func GetClientInfoFromContext(ctx context.Context) models.ClientInfo {
	info, _ := ctx.Value(ClientInfoCtxKey).(models.ClientInfo)
	return info
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace id of the current request or "".
func GetTraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDCtxKey).(string)
	return id
}
