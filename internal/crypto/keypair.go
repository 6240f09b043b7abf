// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secmsg-directory/models"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// KeyPair is a Curve25519 key pair used with NaCl box.
type KeyPair struct {
	Private models.Key
	Public  models.Key
}

// GenerateKeyPair creates a fresh key pair from the OS CSPRNG.
func GenerateKeyPair() (KeyPair, error) {
	return generateKeyPair(rand.Reader)
}

func generateKeyPair(r io.Reader) (KeyPair, error) {
	pub, priv, err := box.GenerateKey(r)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate key pair: %w", err)
	}
	return KeyPair{Private: *priv, Public: *pub}, nil
}

// PublicFromPrivate derives the public half of a Curve25519 private key.
func PublicFromPrivate(private models.Key) (models.Key, error) {
	pub, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return models.Key{}, fmt.Errorf("derive public key: %w", err)
	}
	return models.KeyFromBytes(pub)
}

// Validate checks that Public is derived from Private.
func (kp KeyPair) Validate() error {
	pub, err := PublicFromPrivate(kp.Private)
	if err != nil {
		return err
	}
	if pub != kp.Public {
		return fmt.Errorf("%w: public key does not match private key", ErrInvalidKeyFile)
	}
	return nil
}
