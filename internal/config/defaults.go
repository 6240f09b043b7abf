package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultAddress          = "0.0.0.0:5001"
	DefaultBootstrapAddress = "0.0.0.0:5002"
	DefaultPeerPort         = 5000
	DefaultRelayHops        = 3
	DefaultMaxFrameBytes    = 1 << 20
)

// defaults returns the values used for fields no source has set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KeyDir:    defaultKeyDir("keys"),
			RelayHops: DefaultRelayHops,
		},
		Server: Server{
			Address:          DefaultAddress,
			BootstrapAddress: DefaultBootstrapAddress,
			PeerPort:         DefaultPeerPort,
			MaxFrameBytes:    DefaultMaxFrameBytes,
		},
	}
}

// defaultKeyDir returns $HOME/.secmsg/<name>, or a relative .secmsg/<name>
// when the home directory is unknown.
func defaultKeyDir(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".secmsg", name)
	}
	return filepath.Join(home, ".secmsg", name)
}
