// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate request structures.
//     Supports optional field-level scoping for targeted validation.
//   - RequestValidator: the go-playground/validator backed implementation.
//     Rules are declared in `validate` struct tags of the request models;
//     domain rules (phone, employee_status, strong_password) are registered
//     on construction.
//
// Failures are reported as [ErrValidationFailed] wrapped with a readable
// list of offending fields, named by their JSON keys.
package validators

import "context"

// Validator defines a generic validation interface for request structures.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific struct fields (Go field names).
	Validate(context.Context, any, ...string) error
}
