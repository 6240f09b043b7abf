// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"fmt"
)

// KeySize is the length in bytes of every public or private key exchanged
// by the directory.
const KeySize = 32

// Key is a fixed-size Curve25519 key. It is encoded as standard base64 text
// in JSON payloads.
type Key [KeySize]byte

// KeyFromBytes copies b into a Key. It fails if b is not exactly
// [KeySize] bytes long.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Bytes returns a copy of the key as a byte slice.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// String returns the base64 form of the key.
func (k Key) String() string {
	return base64.StdEncoding.EncodeToString(k[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Key) UnmarshalText(text []byte) error {
	raw, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}

	decoded, err := KeyFromBytes(raw)
	if err != nil {
		return err
	}

	*k = decoded
	return nil
}
