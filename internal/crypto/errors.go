// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecrypt is returned when a ciphertext is malformed or fails
	// authentication.
	ErrDecrypt = errors.New("decryption failed")

	// ErrEmptyRoute is returned when sealing against a route with no
	// destination hop.
	ErrEmptyRoute = errors.New("route has no destination")

	// ErrInvalidKeyFile is returned when a persisted key file has the wrong
	// size or the public key does not belong to the private key.
	ErrInvalidKeyFile = errors.New("invalid key file")
)
