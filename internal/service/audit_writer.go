package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// auditWriter appends audit events inside the caller's unit of work.
type auditWriter struct {
	ids IDGenerator
	now func() time.Time
}

// write records action for the actor. A userID that does not reference an
// existing user is stored as null; an empty email is stored as "N/A".
// The caller's address and user agent are taken from ctx.
func (w auditWriter) write(ctx context.Context, repos store.Repositories, action models.AuditAction, userID, email string) error {
	event := models.AuditEvent{
		ID:        w.ids.Generate(),
		Email:     email,
		Action:    action,
		Timestamp: w.now(),
	}
	if event.Email == "" {
		event.Email = models.UnknownEmail
	}

	info := utils.GetClientInfoFromContext(ctx)
	event.IP = info.IP
	event.UserAgent = utils.TruncateUserAgent(info.UserAgent)

	if userID != "" {
		_, err := repos.Users.FindUserByID(ctx, userID)
		switch {
		case err == nil:
			event.UserID = &userID
		case !errors.Is(err, store.ErrUserNotFound):
			return fmt.Errorf("audit user lookup: %w", err)
		}
	}

	if err := repos.Audit.CreateAuditEvent(ctx, event); err != nil {
		return fmt.Errorf("audit write %s: %w", action, err)
	}
	return nil
}
