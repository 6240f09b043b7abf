// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Direction tells which side a [MessageType] is addressed to.
type Direction string

const (
	// DirectionServer marks requests sent by a client to the directory.
	DirectionServer Direction = "server"

	// DirectionUser marks messages delivered to a user.
	DirectionUser Direction = "user"
)

// RequestKind identifies a [ToServer] variant.
type RequestKind string

const (
	// RequestLogin authenticates an existing handle.
	RequestLogin RequestKind = "login"

	// RequestRegister creates a new handle.
	RequestRegister RequestKind = "register"

	// RequestConnect asks for a relay route to another handle.
	RequestConnect RequestKind = "connect"

	// RequestPublicKey asks for the server's long-lived public key.
	// Only accepted on the bootstrap endpoint.
	RequestPublicKey RequestKind = "public_key"
)

// UserMessageKind identifies a [ToUser] variant.
type UserMessageKind string

// UserServerResponse is the only user-bound variant the directory emits.
const UserServerResponse UserMessageKind = "server_response"

// OutcomeKind identifies a [ServerResponse] variant.
type OutcomeKind string

const (
	OutcomeUser       OutcomeKind = "user"
	OutcomeError      OutcomeKind = "error"
	OutcomeConnection OutcomeKind = "connection"
	OutcomePublicKey  OutcomeKind = "public_key"
)

// MessageType is the top-level tagged union carried inside every frame.
// Exactly one of Server or User is set, matching Direction.
type MessageType struct {
	Direction Direction `json:"direction"`
	Server    *ToServer `json:"server,omitempty"`
	User      *ToUser   `json:"user,omitempty"`
}

// ToServer is a request addressed to the directory.
//
// Handle and Credential are used by login and register, Target by connect.
// Key is always the requester's public key; responses are encrypted for it.
type ToServer struct {
	Kind       RequestKind `json:"kind"`
	Handle     string      `json:"handle,omitempty"`
	Credential string      `json:"credential,omitempty"`
	Target     string      `json:"target,omitempty"`
	Key        Key         `json:"key"`
}

// ToUser is a message addressed to a user.
type ToUser struct {
	Kind     UserMessageKind `json:"kind"`
	Response *ServerResponse `json:"response,omitempty"`
}

// ServerResponse is the outcome of one directory request.
//
// Depending on Kind exactly one payload field is meaningful:
// User for OutcomeUser, Error for OutcomeError, Route for
// OutcomeConnection and PublicKey for OutcomePublicKey.
type ServerResponse struct {
	Kind      OutcomeKind `json:"kind"`
	User      *UserView   `json:"user,omitempty"`
	Error     string      `json:"error,omitempty"`
	Route     Route       `json:"route,omitempty"`
	PublicKey *Key        `json:"public_key,omitempty"`
}

// NewLoginRequest builds a login request.
func NewLoginRequest(handle, credential string, key Key) MessageType {
	return toServer(ToServer{Kind: RequestLogin, Handle: handle, Credential: credential, Key: key})
}

// NewRegisterRequest builds a register request.
func NewRegisterRequest(handle, credential string, key Key) MessageType {
	return toServer(ToServer{Kind: RequestRegister, Handle: handle, Credential: credential, Key: key})
}

// NewConnectRequest builds a connect request for target.
func NewConnectRequest(target string, key Key) MessageType {
	return toServer(ToServer{Kind: RequestConnect, Target: target, Key: key})
}

// NewPublicKeyRequest builds a bootstrap public key request.
func NewPublicKeyRequest(key Key) MessageType {
	return toServer(ToServer{Kind: RequestPublicKey, Key: key})
}

func toServer(req ToServer) MessageType {
	return MessageType{Direction: DirectionServer, Server: &req}
}

// NewServerResponse wraps an outcome in a user-bound message.
func NewServerResponse(resp ServerResponse) MessageType {
	return MessageType{
		Direction: DirectionUser,
		User:      &ToUser{Kind: UserServerResponse, Response: &resp},
	}
}

// UserOutcome returns a successful login/register outcome.
func UserOutcome(view UserView) ServerResponse {
	return ServerResponse{Kind: OutcomeUser, User: &view}
}

// ErrorOutcome returns a user-visible error outcome.
func ErrorOutcome(message string) ServerResponse {
	return ServerResponse{Kind: OutcomeError, Error: message}
}

// ConnectionOutcome returns a relay route outcome.
func ConnectionOutcome(route Route) ServerResponse {
	return ServerResponse{Kind: OutcomeConnection, Route: route}
}

// PublicKeyOutcome returns the server public key outcome.
func PublicKeyOutcome(key Key) ServerResponse {
	return ServerResponse{Kind: OutcomePublicKey, PublicKey: &key}
}
