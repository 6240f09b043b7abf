// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode is returned when a payload is not a well-formed [MessageType].
var ErrDecode = errors.New("invalid protocol message")

// EncodeMessage serializes msg to its JSON wire form.
func EncodeMessage(msg MessageType) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

// DecodeMessage parses a JSON payload and checks that the tagged union is
// consistent: the direction matches the populated branch and every kind is
// known. Any failure wraps [ErrDecode].
func DecodeMessage(data []byte) (MessageType, error) {
	var msg MessageType

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return MessageType{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if dec.More() {
		return MessageType{}, fmt.Errorf("%w: trailing data", ErrDecode)
	}

	if err := msg.validate(); err != nil {
		return MessageType{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return msg, nil
}

func (m MessageType) validate() error {
	switch m.Direction {
	case DirectionServer:
		if m.Server == nil || m.User != nil {
			return errors.New("server message must carry only a server body")
		}
		return m.Server.validate()
	case DirectionUser:
		if m.User == nil || m.Server != nil {
			return errors.New("user message must carry only a user body")
		}
		return m.User.validate()
	default:
		return fmt.Errorf("unknown direction %q", m.Direction)
	}
}

func (r ToServer) validate() error {
	switch r.Kind {
	case RequestLogin, RequestRegister, RequestConnect, RequestPublicKey:
		return nil
	default:
		return fmt.Errorf("unknown request kind %q", r.Kind)
	}
}

func (u ToUser) validate() error {
	if u.Kind != UserServerResponse {
		return fmt.Errorf("unknown user message kind %q", u.Kind)
	}
	if u.Response == nil {
		return errors.New("server response is empty")
	}

	switch u.Response.Kind {
	case OutcomeUser:
		if u.Response.User == nil {
			return errors.New("user outcome without user")
		}
	case OutcomeConnection:
		if len(u.Response.Route) == 0 {
			return errors.New("connection outcome with empty route")
		}
	case OutcomePublicKey:
		if u.Response.PublicKey == nil {
			return errors.New("public key outcome without key")
		}
	case OutcomeError:
	default:
		return fmt.Errorf("unknown outcome kind %q", u.Response.Kind)
	}

	return nil
}
