// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-secmsg-directory/models"
)

const (
	privateKeyFile = "private"
	publicKeyFile  = "public"
)

// KeyStore persists a server key pair as two raw 32-byte files, "private"
// and "public", inside one directory.
type KeyStore struct {
	dir string
}

// NewKeyStore returns a [KeyStore] rooted at dir.
func NewKeyStore(dir string) *KeyStore {
	return &KeyStore{dir: dir}
}

// Dir returns the key directory.
func (s *KeyStore) Dir() string {
	return s.dir
}

// LoadOrGenerate loads the key pair from disk. If either file is missing a
// new pair is generated and both files are (re)written. The boolean result
// reports whether a new pair was generated.
func (s *KeyStore) LoadOrGenerate() (KeyPair, bool, error) {
	kp, err := s.Load()
	if err == nil {
		return kp, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return KeyPair{}, false, err
	}

	kp, err = GenerateKeyPair()
	if err != nil {
		return KeyPair{}, false, err
	}
	if err := s.Save(kp); err != nil {
		return KeyPair{}, false, err
	}

	return kp, true, nil
}

// Load reads both key files and checks that they belong together.
func (s *KeyStore) Load() (KeyPair, error) {
	priv, err := readKey(filepath.Join(s.dir, privateKeyFile))
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := readKey(filepath.Join(s.dir, publicKeyFile))
	if err != nil {
		return KeyPair{}, err
	}

	kp := KeyPair{Private: priv, Public: pub}
	if err := kp.Validate(); err != nil {
		return KeyPair{}, err
	}
	return kp, nil
}

// Save writes kp into the key directory, creating it if needed.
func (s *KeyStore) Save(kp KeyPair) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, privateKeyFile), kp.Private[:], 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, publicKeyFile), kp.Public[:], 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	return nil
}

func readKey(path string) (models.Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Key{}, fmt.Errorf("read key file: %w", err)
	}

	key, err := models.KeyFromBytes(raw)
	if err != nil {
		return models.Key{}, fmt.Errorf("%w %s: %w", ErrInvalidKeyFile, filepath.Base(path), err)
	}
	return key, nil
}
