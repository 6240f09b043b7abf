// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the directory server.
// It is populated by merging command-line flags, environment variables and
// an optional config file, then completed with defaults and validated.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings of the directory itself: key material location,
	// credential handling and route construction.
	App App `envPrefix:"APP_"`

	// Server holds listener addresses and per-connection limits.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a config file. Despite the name
	// the format follows the extension: .json, .toml, .yaml or .yml.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds directory-level settings.
type App struct {
	// KeyDir is the directory holding the server key pair files "private"
	// and "public". A fresh pair is generated there when missing.
	// Env: APP_KEY_DIR
	KeyDir string `env:"KEY_DIR"`

	// CredentialHashKey, when non-empty, makes the directory keep
	// HMAC-SHA256 digests of credentials keyed with it instead of the
	// credentials themselves.
	// Env: APP_CREDENTIAL_HASH_KEY
	CredentialHashKey string `env:"CREDENTIAL_HASH_KEY"`

	// RelayHops is the number of relay candidates appended to connection
	// routes. Zero selects the default.
	// Env: APP_RELAY_HOPS
	RelayHops int `env:"RELAY_HOPS"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds listener and connection settings.
type Server struct {
	// Address is the encrypted directory endpoint, "host:port".
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// BootstrapAddress is the plaintext public key endpoint, "host:port".
	// Env: SERVER_BOOTSTRAP_ADDRESS
	BootstrapAddress string `env:"BOOTSTRAP_ADDRESS"`

	// AdminAddress enables the admin HTTP server when non-empty.
	// Env: SERVER_ADMIN_ADDRESS
	AdminAddress string `env:"ADMIN_ADDRESS"`

	// PeerPort replaces the source port of a connection when the directory
	// records where a peer can be reached.
	// Env: SERVER_PEER_PORT
	PeerPort int `env:"PEER_PORT"`

	// ReadTimeout and WriteTimeout bound the request read and response
	// write of one connection. Zero disables the deadline.
	// Env: SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT
	ReadTimeout  time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// MaxConnections bounds concurrently served main endpoint connections.
	// Zero means unbounded.
	// Env: SERVER_MAX_CONNECTIONS
	MaxConnections int `env:"MAX_CONNECTIONS"`

	// MaxFrameBytes caps the payload size of a frame in either direction.
	// Env: SERVER_MAX_FRAME_BYTES
	MaxFrameBytes uint64 `env:"MAX_FRAME_BYTES"`

	// RateLimitRPS and RateLimitBurst throttle accepted connections per
	// remote host. Zero RPS disables the limit.
	// Env: SERVER_RATE_LIMIT_RPS, SERVER_RATE_LIMIT_BURST
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source that sets a field wins):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (path resolved from sources 1 and 2)
//
// Fields left unset by every source receive their defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(os.Args[1:]).
		withEnv().
		withFile().
		build()
}
