// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-erp-auth HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the "message" field of response bodies. Keeping them in one place ensures
// consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a request fails validation and
	// no more specific message is available.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned for an unknown email or a wrong
	// password. Both cases share the message on purpose.
	MsgInvalidCredentials = "invalid credentials"

	// MsgEmailAlreadyRegistered is returned when registration or employee
	// provisioning hits an existing email.
	MsgEmailAlreadyRegistered = "email is already registered"

	// MsgNotFound is returned when the addressed user, employee or OTP does
	// not exist.
	MsgNotFound = "not found"

	// MsgOTPInvalid is returned for a wrong code while attempts remain.
	MsgOTPInvalid = "invalid verification code"

	// MsgOTPExpired is returned when the pending code outlived its window.
	MsgOTPExpired = "verification code expired, request a new one"

	// MsgOTPAttemptsExceeded is returned when the last allowed attempt failed.
	MsgOTPAttemptsExceeded = "too many invalid attempts, request a new code"

	// MsgTooManyLoginAttempts is returned by the failed-login throttle.
	MsgTooManyLoginAttempts = "too many failed login attempts, try again later"

	// MsgTooManyRequests is returned by the per-IP request rate limit.
	MsgTooManyRequests = "too many requests"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a session token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAuthorizationRequired is returned when a protected route is called
	// without a bearer token.
	MsgAuthorizationRequired = "authorization required"

	// MsgAdminRoleRequired is returned when a valid session lacks the admin
	// role.
	MsgAdminRoleRequired = "admin role required"

	// MsgInvalidQueryParam is returned when a numeric query parameter such
	// as limit or days cannot be parsed.
	MsgInvalidQueryParam = "invalid query parameter"
)
