// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the go-erp-auth server.
//
// The primary abstraction is [EmailSender], the notification dispatcher used
// to deliver one-time codes and temporary credentials. Three implementations
// are available and selected by configuration in [NewEmailSender]:
//   - log:  writes the message to the structured log (development);
//   - smtp: delivers through an SMTP relay;
//   - http: posts the message to an HTTP email provider API.
//
// Delivery is best effort: callers log and swallow errors returned by Send.
// Provider answers of the HTTP sender are mapped to sentinel errors by
// mapHTTPError so that callers can use [errors.Is].
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers a single email message.
type EmailSender interface {
	// Send delivers a message with the given subject and HTML body to the
	// address to. It returns an error when the message could not be handed
	// over to the delivery channel.
	Send(ctx context.Context, to, subject, body string) error
}
