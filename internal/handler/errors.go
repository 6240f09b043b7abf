// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"errors"

	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/wire"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

var (
	// ErrProtocol is returned when a well-formed message is not acceptable
	// on the endpoint it arrived at: a user-bound message sent to the server,
	// or a public key request on the encrypted endpoint.
	ErrProtocol = errors.New("request not accepted on this endpoint")

	// errNoHandlersAreCreated is returned by NewHandlers when neither TCP
	// endpoint is configured.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errHandlerPanic marks a connection whose handler panicked.
	errHandlerPanic = errors.New("connection handler panicked")
)

// Abort categories reported in logs and metrics.
const (
	abortFrame    = "frame"
	abortDecrypt  = "decrypt"
	abortDecode   = "decode"
	abortProtocol = "protocol"
	abortAddress  = "address"
	abortPanic    = "panic"
	abortInternal = "internal"
)

// abortReason names the category of a connection-fatal error.
func abortReason(err error) string {
	switch {
	case errors.Is(err, wire.ErrTruncatedFrame), errors.Is(err, wire.ErrPayloadTooLarge):
		return abortFrame
	case errors.Is(err, crypto.ErrDecrypt):
		return abortDecrypt
	case errors.Is(err, models.ErrDecode):
		return abortDecode
	case errors.Is(err, ErrProtocol):
		return abortProtocol
	case errors.Is(err, utils.ErrNoPeerAddress):
		return abortAddress
	case errors.Is(err, errHandlerPanic):
		return abortPanic
	default:
		return abortInternal
	}
}
