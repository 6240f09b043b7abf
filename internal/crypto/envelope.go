// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secmsg-directory/models"
	"golang.org/x/crypto/nacl/box"
)

// NonceSize is the size of the nonce prepended to server-sealed envelopes.
const NonceSize = 24

// boxCipher implements [EnvelopeCipher] with NaCl box.
//
// Inbound payloads are anonymous sealed boxes addressed to the server key,
// so a client needs nothing but the server public key to write one.
// Outbound payloads are authenticated boxes from the server key pair to
// route[0]: nonce (24 bytes) ‖ box.
type boxCipher struct {
	keys KeyPair
	rand io.Reader
}

// NewEnvelopeCipher returns an [EnvelopeCipher] bound to the server keys.
func NewEnvelopeCipher(keys KeyPair) EnvelopeCipher {
	return &boxCipher{keys: keys, rand: rand.Reader}
}

func (c *boxCipher) PublicKey() models.Key {
	return c.keys.Public
}

func (c *boxCipher) Open(data []byte) (models.MessageType, error) {
	pub, priv := [32]byte(c.keys.Public), [32]byte(c.keys.Private)

	plain, ok := box.OpenAnonymous(nil, data, &pub, &priv)
	if !ok {
		return models.MessageType{}, ErrDecrypt
	}

	return models.DecodeMessage(plain)
}

func (c *boxCipher) Seal(msg models.MessageType, route models.Route) (models.Envelope, error) {
	dest, ok := route.Destination()
	if !ok {
		return models.Envelope{}, ErrEmptyRoute
	}

	plain, err := models.EncodeMessage(msg)
	if err != nil {
		return models.Envelope{}, err
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(c.rand, nonce[:]); err != nil {
		return models.Envelope{}, fmt.Errorf("generate nonce: %w", err)
	}

	recipient, priv := [32]byte(dest.PublicKey), [32]byte(c.keys.Private)
	data := box.Seal(nonce[:], plain, &nonce, &recipient, &priv)

	return models.Envelope{Route: route, Data: data}, nil
}

// SealForServer is the client half of [EnvelopeCipher.Open]: it encodes msg
// and seals it anonymously for the server public key.
func SealForServer(msg models.MessageType, server models.Key) ([]byte, error) {
	plain, err := models.EncodeMessage(msg)
	if err != nil {
		return nil, err
	}

	pub := [32]byte(server)
	data, err := box.SealAnonymous(nil, plain, &pub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("seal for server: %w", err)
	}
	return data, nil
}

// OpenFromServer is the client half of [EnvelopeCipher.Seal]: it verifies
// that data was sealed by server for the holder of keys and decodes it.
func OpenFromServer(data []byte, server models.Key, keys KeyPair) (models.MessageType, error) {
	if len(data) < NonceSize+box.Overhead {
		return models.MessageType{}, ErrDecrypt
	}

	var nonce [NonceSize]byte
	copy(nonce[:], data[:NonceSize])

	sender, priv := [32]byte(server), [32]byte(keys.Private)
	plain, ok := box.Open(nil, data[NonceSize:], &nonce, &sender, &priv)
	if !ok {
		return models.MessageType{}, ErrDecrypt
	}

	return models.DecodeMessage(plain)
}
