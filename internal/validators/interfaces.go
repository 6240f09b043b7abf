// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for directory requests.
//
// A [Validator] checks a value, optionally restricted to a set of named
// fields. Services hold one and call it before touching the directory, so
// malformed requests never reach the store.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
