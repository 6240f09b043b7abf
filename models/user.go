// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is a registered directory entry.
// Records are created on successful registration and never mutated
// afterwards; the handle is the unique key of the directory.
type User struct {
	// Handle is the unique name the user registered under.
	Handle string `json:"handle"`

	// Credential is the secret presented on login. It is either the raw
	// value sent by the client or its keyed hash, depending on server
	// configuration. Never serialized.
	Credential string `json:"-"`

	// Address is the "ip:port" of the user's peer listening port, derived
	// from the connection that registered the handle.
	Address string `json:"addr"`

	// PublicKey is the key the user registered with.
	PublicKey Key `json:"public_key"`
}

// View returns the public projection of the record sent back to clients.
func (u User) View() UserView {
	return UserView{
		Handle:    u.Handle,
		Address:   u.Address,
		PublicKey: u.PublicKey,
	}
}

// Hop returns the user as a route hop.
func (u User) Hop() Hop {
	return Hop{Address: u.Address, PublicKey: u.PublicKey}
}

// UserView is the part of a [User] that is safe to hand to other parties.
type UserView struct {
	Handle    string `json:"handle"`
	Address   string `json:"addr"`
	PublicKey Key    `json:"public_key"`
}
