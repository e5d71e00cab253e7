// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the session middleware when reading the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrAdminRoleRequired is returned when the session token is valid but
	// its role claim is not admin.
	ErrAdminRoleRequired = errors.New("admin role required")

	// ErrInvalidQueryParam is returned when a numeric query parameter cannot
	// be parsed.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)
