// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-visible message strings shared by the
// directory server and its client.
//
// The server writes them into error outcomes; the client matches on them to
// recover typed errors. Keeping them in one place keeps both sides in step.
package app

const (
	// MsgInvalidDataProvided is returned when a register request cannot
	// produce a usable directory record.
	MsgInvalidDataProvided = "Invalid data provided."

	// MsgUsernameInUse is returned when registering a handle that already
	// exists.
	MsgUsernameInUse = "Username already in use."

	// MsgUserDoesNotExist is returned when logging in with an unknown handle.
	MsgUserDoesNotExist = "User does not exist."

	// MsgIncorrectPassword is returned when the credential does not match.
	MsgIncorrectPassword = "Incorrect password."

	// MsgTargetNotFoundPrefix starts the message returned when a connection
	// target is not registered. See [TargetNotFound].
	MsgTargetNotFoundPrefix = "Could not find user "
)

// TargetNotFound returns the message for an unknown connection target.
func TargetNotFound(handle string) string {
	return MsgTargetNotFoundPrefix + handle + "."
}
