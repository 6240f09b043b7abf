package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout shared by all supported formats.
type fileConfig struct {
	App struct {
		KeyDir            string `json:"key_dir" toml:"key_dir" yaml:"key_dir"`
		CredentialHashKey string `json:"credential_hash_key" toml:"credential_hash_key" yaml:"credential_hash_key"`
		RelayHops         int    `json:"relay_hops" toml:"relay_hops" yaml:"relay_hops"`
		LogLevel          string `json:"log_level" toml:"log_level" yaml:"log_level"`
	} `json:"app" toml:"app" yaml:"app"`

	Server struct {
		Address          string   `json:"address" toml:"address" yaml:"address"`
		BootstrapAddress string   `json:"bootstrap_address" toml:"bootstrap_address" yaml:"bootstrap_address"`
		AdminAddress     string   `json:"admin_address" toml:"admin_address" yaml:"admin_address"`
		PeerPort         int      `json:"peer_port" toml:"peer_port" yaml:"peer_port"`
		ReadTimeout      Duration `json:"read_timeout" toml:"read_timeout" yaml:"read_timeout"`
		WriteTimeout     Duration `json:"write_timeout" toml:"write_timeout" yaml:"write_timeout"`
		MaxConnections   int      `json:"max_connections" toml:"max_connections" yaml:"max_connections"`
		MaxFrameBytes    uint64   `json:"max_frame_bytes" toml:"max_frame_bytes" yaml:"max_frame_bytes"`
		RateLimitRPS     float64  `json:"rate_limit_rps" toml:"rate_limit_rps" yaml:"rate_limit_rps"`
		RateLimitBurst   int      `json:"rate_limit_burst" toml:"rate_limit_burst" yaml:"rate_limit_burst"`
	} `json:"server" toml:"server" yaml:"server"`
}

// parseFile reads a config file, choosing the decoder by extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return &StructuredConfig{
		App: App{
			KeyDir:            fc.App.KeyDir,
			CredentialHashKey: fc.App.CredentialHashKey,
			RelayHops:         fc.App.RelayHops,
			LogLevel:          fc.App.LogLevel,
		},
		Server: Server{
			Address:          fc.Server.Address,
			BootstrapAddress: fc.Server.BootstrapAddress,
			AdminAddress:     fc.Server.AdminAddress,
			PeerPort:         fc.Server.PeerPort,
			ReadTimeout:      time.Duration(fc.Server.ReadTimeout),
			WriteTimeout:     time.Duration(fc.Server.WriteTimeout),
			MaxConnections:   fc.Server.MaxConnections,
			MaxFrameBytes:    fc.Server.MaxFrameBytes,
			RateLimitRPS:     fc.Server.RateLimitRPS,
			RateLimitBurst:   fc.Server.RateLimitBurst,
		},
	}, nil
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// in every supported file format. JSON also accepts a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
