// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/store"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/validators"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

// directoryService is the concrete implementation of DirectoryService.
type directoryService struct {
	// directory is the shared handle → user mapping.
	directory store.Directory

	// serverKey is the server long-lived public key handed out on the
	// bootstrap endpoint.
	serverKey models.Key

	// credentialHashKey, when set, makes the service store and compare
	// HMAC-SHA256 digests of credentials instead of the raw values.
	credentialHashKey string

	// relayHops is the number of relay candidates added to connection
	// routes.
	relayHops int

	validator validators.Validator
	logger    *logger.Logger
}

// DirectoryOptions configures NewDirectoryService. A zero RelayHops
// selects DefaultRelayHops.
type DirectoryOptions struct {
	ServerKey         models.Key
	CredentialHashKey string
	RelayHops         int
}

// NewDirectoryService constructs a DirectoryService over directory.
//
// The returned service is safe for concurrent use; all of its own state is
// read-only after construction.
func NewDirectoryService(directory store.Directory, opts DirectoryOptions, logger *logger.Logger) DirectoryService {
	if opts.RelayHops == 0 {
		opts.RelayHops = DefaultRelayHops
	}

	return &directoryService{
		directory:         directory,
		serverKey:         opts.ServerKey,
		credentialHashKey: opts.CredentialHashKey,
		relayHops:         opts.RelayHops,
		validator:         validators.NewUserValidator(),
		logger:            logger,
	}
}

// Register creates a directory entry for user.
//
// Any handle is accepted, the empty one included. Returns the stored
// record's view or:
//   - ErrInvalidDataProvided if the record has no peer address.
//   - a wrapped store.ErrHandleInUse if the handle is taken.
func (s *directoryService) Register(ctx context.Context, user models.User) (models.UserView, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user, validators.FieldAddress); err != nil {
		log.Warn().Err(err).Msg("invalid register request")
		return models.UserView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.hashCredential(&user)

	registered, err := s.directory.Register(ctx, user)
	if err != nil {
		log.Info().Err(err).Str("handle", user.Handle).Msg("registration rejected")
		return models.UserView{}, fmt.Errorf("user registration failed: %w", err)
	}

	log.Info().Str("handle", registered.Handle).Str("addr", registered.Address).Msg("user registered")
	return registered.View(), nil
}

// Login authenticates an existing user.
//
// Returns the user's view with the requester's observed address or a
// wrapped store.ErrNoUserWasFound or store.ErrWrongCredential.
func (s *directoryService) Login(ctx context.Context, user models.User) (models.UserView, error) {
	log := logger.FromContext(ctx)

	s.hashCredential(&user)

	found, err := s.directory.Login(ctx, user.Handle, user.Credential)
	if err != nil {
		log.Info().Err(err).Str("handle", user.Handle).Msg("login rejected")
		return models.UserView{}, fmt.Errorf("user login failed: %w", err)
	}

	view := found.View()
	view.Address = user.Address

	return view, nil
}

// Connect looks target up and builds its relay route.
//
// Returns the route or a wrapped store.ErrTargetNotFound.
func (s *directoryService) Connect(ctx context.Context, target string) (models.Route, error) {
	found, peers, err := s.directory.LookupForConnect(ctx, target, s.relayHops)
	if err != nil {
		logger.FromContext(ctx).Info().Err(err).Str("target", target).Msg("connect target lookup failed")
		return nil, fmt.Errorf("connect lookup failed: %w", err)
	}

	return BuildRelayRoute(found.Hop(), peers, s.relayHops), nil
}

func (s *directoryService) PublicKey(ctx context.Context) models.Key {
	return s.serverKey
}

func (s *directoryService) Stats(ctx context.Context) models.DirectoryStats {
	return models.DirectoryStats{Users: s.directory.Len(ctx)}
}

// hashCredential replaces the plain credential with its keyed digest when
// a credential hash key is configured.
func (s *directoryService) hashCredential(user *models.User) {
	if s.credentialHashKey == "" {
		return
	}
	user.Credential = utils.HashString(user.Credential, s.credentialHashKey)
}
