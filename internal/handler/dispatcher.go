// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/service"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/wire"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

// Endpoint names used in logs and metrics.
const (
	EndpointMain      = "main"
	EndpointBootstrap = "bootstrap"
)

// DefaultPeerPort is the port peers listen on for each other. It replaces
// the ephemeral source port of a connection in directory addresses.
const DefaultPeerPort = 5000

// Dispatcher turns one decoded request into one response.
//
// Every exchange is terminal: a connection carries exactly one request
// frame and at most one response frame.
type Dispatcher struct {
	directory service.DirectoryService
	cipher    crypto.EnvelopeCipher

	peerPort     int
	limits       wire.Limits
	readTimeout  time.Duration
	writeTimeout time.Duration

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// DispatcherOptions tunes the per-connection behavior of a Dispatcher.
// Zero timeouts disable deadlines.
type DispatcherOptions struct {
	PeerPort     int
	Limits       wire.Limits
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewDispatcher(directory service.DirectoryService, cipher crypto.EnvelopeCipher, opts DispatcherOptions, logger *logger.Logger) *Dispatcher {
	if opts.PeerPort == 0 {
		opts.PeerPort = DefaultPeerPort
	}

	logger.Info().Int("peer_port", opts.PeerPort).Msg("dispatcher created")
	return &Dispatcher{
		directory:    directory,
		cipher:       cipher,
		peerPort:     opts.PeerPort,
		limits:       opts.Limits,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		ids:          utils.NewUUIDGenerator(),
		logger:       logger,
	}
}

// DispatchMain executes a decrypted main-endpoint request from the peer
// observed at observedAddr.
//
// It returns the response and the route it must be sealed against.
// Directory failures are folded into an error outcome; any other error
// (ErrProtocol included) means the connection must be dropped without a
// reply.
func (d *Dispatcher) DispatchMain(ctx context.Context, msg models.MessageType, observedAddr string) (models.MessageType, models.Route, error) {
	req, err := serverRequest(msg)
	if err != nil {
		return models.MessageType{}, nil, err
	}

	// the reply always travels back to the requester
	replyRoute := service.BuildDirectRoute(observedAddr, req.Key)

	var outcome models.ServerResponse
	switch req.Kind {
	case models.RequestLogin:
		view, err := d.directory.Login(ctx, models.User{
			Handle:     req.Handle,
			Credential: req.Credential,
			Address:    observedAddr,
			PublicKey:  req.Key,
		})
		outcome, err = userOutcome(view, err, req.Handle)
		if err != nil {
			return models.MessageType{}, nil, err
		}

	case models.RequestRegister:
		view, err := d.directory.Register(ctx, models.User{
			Handle:     req.Handle,
			Credential: req.Credential,
			Address:    observedAddr,
			PublicKey:  req.Key,
		})
		outcome, err = userOutcome(view, err, req.Handle)
		if err != nil {
			return models.MessageType{}, nil, err
		}

	case models.RequestConnect:
		route, err := d.directory.Connect(ctx, req.Target)
		if err != nil {
			message, ok := messageFromError(err, req.Target)
			if !ok {
				return models.MessageType{}, nil, err
			}
			outcome = models.ErrorOutcome(message)
			break
		}
		outcome = models.ConnectionOutcome(route)

	default:
		return models.MessageType{}, nil, fmt.Errorf("%w: %s on %s endpoint", ErrProtocol, req.Kind, EndpointMain)
	}

	return models.NewServerResponse(outcome), replyRoute, nil
}

// DispatchBootstrap executes a plaintext bootstrap request. Only the
// public key request is accepted.
func (d *Dispatcher) DispatchBootstrap(ctx context.Context, msg models.MessageType) (models.MessageType, error) {
	req, err := serverRequest(msg)
	if err != nil {
		return models.MessageType{}, err
	}

	if req.Kind != models.RequestPublicKey {
		return models.MessageType{}, fmt.Errorf("%w: %s on %s endpoint", ErrProtocol, req.Kind, EndpointBootstrap)
	}

	return models.NewServerResponse(models.PublicKeyOutcome(d.directory.PublicKey(ctx))), nil
}

func serverRequest(msg models.MessageType) (*models.ToServer, error) {
	if msg.Direction != models.DirectionServer || msg.Server == nil {
		return nil, fmt.Errorf("%w: message is not addressed to the server", ErrProtocol)
	}
	return msg.Server, nil
}

func userOutcome(view models.UserView, err error, handle string) (models.ServerResponse, error) {
	if err == nil {
		return models.UserOutcome(view), nil
	}

	message, ok := messageFromError(err, handle)
	if !ok {
		return models.ServerResponse{}, err
	}
	return models.ErrorOutcome(message), nil
}
