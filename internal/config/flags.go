package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a main (encrypted) endpoint address in format [host]:[port]
//	-b bootstrap (public key) endpoint address in format [host]:[port]
//	-admin admin HTTP address in format [host]:[port]
//	-peer-port port peers listen on
//	-read-timeout / -write-timeout per-connection deadlines (e.g. "5s")
//	-max-connections bound on concurrently served connections
//	-max-frame-bytes frame payload limit
//	-rate-limit-rps / -rate-limit-burst per-host accept rate limit
//	-k key pair directory
//	-credential-hash-key HMAC key for stored credentials
//	-relay-hops relay candidates per connection route
//	-log-level log level
//	-c/-config config file path (.json, .toml, .yaml)
func parseFlags(args []string) (*StructuredConfig, error) {
	var cfg StructuredConfig
	var address, bootstrapAddress, adminAddress NetAddress

	fs := flag.NewFlagSet("secmsg-server", flag.ContinueOnError)

	fs.Var(&address, "a", "Main endpoint address host:port")
	fs.Var(&bootstrapAddress, "b", "Bootstrap endpoint address host:port")
	fs.Var(&adminAddress, "admin", "Admin HTTP address host:port (disabled when empty)")
	fs.IntVar(&cfg.Server.PeerPort, "peer-port", 0, "Port peers listen on")
	fs.DurationVar(&cfg.Server.ReadTimeout, "read-timeout", 0, "Request read timeout (e.g., 5s)")
	fs.DurationVar(&cfg.Server.WriteTimeout, "write-timeout", 0, "Response write timeout (e.g., 5s)")
	fs.IntVar(&cfg.Server.MaxConnections, "max-connections", 0, "Concurrent connection limit (0 is unbounded)")
	fs.Uint64Var(&cfg.Server.MaxFrameBytes, "max-frame-bytes", 0, "Frame payload limit in bytes")
	fs.Float64Var(&cfg.Server.RateLimitRPS, "rate-limit-rps", 0, "Accepted connections per second per host (0 disables)")
	fs.IntVar(&cfg.Server.RateLimitBurst, "rate-limit-burst", 0, "Rate limit burst per host")
	fs.StringVar(&cfg.App.KeyDir, "k", "", "Key pair directory")
	fs.StringVar(&cfg.App.CredentialHashKey, "credential-hash-key", "", "Credential hash key")
	fs.IntVar(&cfg.App.RelayHops, "relay-hops", 0, "Relay candidates per connection route")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "Config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "Config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.Address = address.String()
	cfg.Server.BootstrapAddress = bootstrapAddress.String()
	cfg.Server.AdminAddress = adminAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset NetAddress yields the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// The host may be empty (all interfaces), "localhost", or an IPv4/IPv6
// literal; IPv6 literals must be bracketed.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
