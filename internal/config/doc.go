// Package config provides configuration loading, merging, and validation
// facilities for the directory server and its command-line client.
//
// Server configuration is assembled from multiple sources in the following
// priority order (earlier sources win for fields they set):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (JSON, TOML or YAML, chosen by extension)
//
// Fields no source sets fall back to defaults (main endpoint 0.0.0.0:5001,
// bootstrap endpoint 0.0.0.0:5002, peer port 5000, three relay hops, 1 MiB
// frames, keys under $HOME/.secmsg/keys).
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
