// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"math"
	"net"
	"strconv"
)

// validate checks that the final merged [StructuredConfig] can be served.
//
// Returns nil if the configuration is valid, or an error wrapping
// [ErrInvalidServerConfig] or [ErrInvalidAppConfig] otherwise.
func (cfg *StructuredConfig) validate() error {
	s := cfg.Server

	if err := validateAddress("address", s.Address); err != nil {
		return err
	}
	if err := validateAddress("bootstrap address", s.BootstrapAddress); err != nil {
		return err
	}
	if s.Address == s.BootstrapAddress {
		return fmt.Errorf("%w: main and bootstrap endpoints share %s", ErrInvalidServerConfig, s.Address)
	}
	if s.AdminAddress != "" {
		if err := validateAddress("admin address", s.AdminAddress); err != nil {
			return err
		}
		if s.AdminAddress == s.Address || s.AdminAddress == s.BootstrapAddress {
			return fmt.Errorf("%w: admin endpoint shares %s", ErrInvalidServerConfig, s.AdminAddress)
		}
	}

	switch {
	case s.PeerPort < 1 || s.PeerPort > math.MaxUint16:
		return fmt.Errorf("%w: peer port %d out of range", ErrInvalidServerConfig, s.PeerPort)
	case s.ReadTimeout < 0 || s.WriteTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfig)
	case s.MaxConnections < 0:
		return fmt.Errorf("%w: negative connection limit", ErrInvalidServerConfig)
	case s.MaxFrameBytes == 0 || s.MaxFrameBytes > math.MaxUint32:
		return fmt.Errorf("%w: max frame bytes %d out of range", ErrInvalidServerConfig, s.MaxFrameBytes)
	case s.RateLimitRPS < 0:
		return fmt.Errorf("%w: negative rate limit", ErrInvalidServerConfig)
	case s.RateLimitRPS > 0 && s.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate limit burst must be at least 1", ErrInvalidServerConfig)
	}

	if cfg.App.RelayHops < 0 {
		return fmt.Errorf("%w: negative relay hops", ErrInvalidAppConfig)
	}
	if cfg.App.KeyDir == "" {
		return fmt.Errorf("%w: empty key directory", ErrInvalidAppConfig)
	}

	return nil
}

func validateAddress(name, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrInvalidServerConfig, name, addr, err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("%w: %s %q: bad port", ErrInvalidServerConfig, name, addr)
	}
	return nil
}
