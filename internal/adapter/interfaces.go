// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the directory protocol.
//
// The primary abstraction is [ServerAdapter], which hides framing and the
// envelope cipher from callers. The package ships a TCP implementation
// ([NewTCPServerAdapter]) that opens one connection per request, as the
// server expects.
//
// An error outcome from the server is returned as a [*ResponseError]; it
// matches the sentinel values in errors.go with [errors.Is] (e.g.
// [ErrUsernameInUse] for "Username already in use.").
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-secmsg-directory/models"
)

// ServerAdapter defines communication with the directory server.
type ServerAdapter interface {
	// FetchPublicKey asks the bootstrap endpoint for the server public key
	// and remembers it for the encrypted requests that follow.
	FetchPublicKey(ctx context.Context) (models.Key, error)

	// Register creates handle with credential, announcing the adapter's own
	// public key. The returned view carries the address the server observed.
	Register(ctx context.Context, handle, credential string) (models.UserView, error)

	// Login authenticates handle with credential. The returned view carries
	// the key the server has on record for handle.
	Login(ctx context.Context, handle, credential string) (models.UserView, error)

	// Connect asks for a relay route to target. route[0] is the target.
	Connect(ctx context.Context, target string) (models.Route, error)
}
