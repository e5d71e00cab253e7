// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
)

// httpEmailMessage is the JSON payload posted to the email provider.
type httpEmailMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type httpEmailSender struct {
	client   *utils.HTTPClient
	endpoint string

	from   string
	apiKey string

	logger *logger.Logger
}

// NewHTTPEmailSender constructs an [EmailSender] posting messages to the
// provider endpoint cfg.APIURL. The API key, when set, is sent as a bearer
// token. Returns an error if the URL is empty or cannot be parsed.
func NewHTTPEmailSender(cfg config.Email, logger *logger.Logger) (EmailSender, error) {
	endpoint, err := normalizeURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid email api url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(cfg.RequestTimeout)

	return &httpEmailSender{
		client:   client,
		endpoint: endpoint,
		from:     cfg.From,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		logger:   logger,
	}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [EmailSender]. Non-2xx responses are mapped to the
// sentinel errors of this package and wrapped with [ErrDelivery].
func (h *httpEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := validateRecipient(to); err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(httpEmailMessage{From: h.from, To: []string{to}, Subject: subject, HTML: body})
	if h.apiKey != "" {
		req.SetAuthToken(h.apiKey)
	}
	if traceID := utils.GetTraceIDFromContext(ctx); traceID != "" {
		req.SetHeader("X-Trace-ID", traceID)
	}

	resp, err := req.Post(h.endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpEmailSender.Send").Msg("email provider rejected message")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	return nil
}
