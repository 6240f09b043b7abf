// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// errTooManyAcceptErrors stops an accept loop that keeps failing.
	errTooManyAcceptErrors = errors.New("too many consecutive accept errors")
)
