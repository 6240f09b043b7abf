// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

// memoryDirectory is the in-memory implementation of [Directory].
//
// Records live in a map keyed by handle; order keeps the handles in
// registration order so relay selection is deterministic for a given
// directory state. Both are guarded by one mutex held for the whole of
// each call.
type memoryDirectory struct {
	mu     sync.RWMutex
	users  map[string]models.User
	order  []string
	logger *logger.Logger
}

// NewDirectory constructs an empty [Directory].
func NewDirectory(logger *logger.Logger) Directory {
	logger.Debug().Msg("creating in-memory directory")
	return &memoryDirectory{
		users:  make(map[string]models.User),
		logger: logger,
	}
}

// Register performs check-then-insert under the write lock.
func (d *memoryDirectory) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[user.Handle]; ok {
		log.Debug().Str("handle", user.Handle).Msg("handle already registered")
		return models.User{}, ErrHandleInUse
	}

	d.users[user.Handle] = user
	d.order = append(d.order, user.Handle)

	return user, nil
}

// Login looks the handle up and compares credentials in constant time.
// The stored record is returned unchanged.
func (d *memoryDirectory) Login(ctx context.Context, handle, credential string) (models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[handle]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	if subtle.ConstantTimeCompare([]byte(user.Credential), []byte(credential)) != 1 {
		return models.User{}, ErrWrongCredential
	}

	return user, nil
}

// LookupForConnect resolves the target and collects relay candidates in
// the same read section. The target itself is never a relay candidate.
func (d *memoryDirectory) LookupForConnect(ctx context.Context, handle string, relays int) (models.User, []models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	target, ok := d.users[handle]
	if !ok {
		return models.User{}, nil, ErrTargetNotFound
	}

	peers := make([]models.User, 0, max(0, min(relays, len(d.order)-1)))
	for _, h := range d.order {
		if len(peers) >= relays {
			break
		}
		if h == handle {
			continue
		}
		peers = append(peers, d.users[h])
	}

	return target, peers, nil
}

func (d *memoryDirectory) Len(ctx context.Context) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.users)
}
