// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by [Directory] methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrHandleInUse is returned when registering a handle that already
	// exists in the directory.
	ErrHandleInUse = errors.New("handle already in use")

	// ErrNoUserWasFound is returned by Login when the handle is unknown.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrWrongCredential is returned by Login when the handle exists but
	// the credential does not match.
	ErrWrongCredential = errors.New("wrong credential")

	// ErrTargetNotFound is returned by LookupForConnect when the target
	// handle is unknown.
	ErrTargetNotFound = errors.New("connect target not found")
)
