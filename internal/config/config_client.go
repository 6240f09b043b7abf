package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	DefaultClientAddress          = "127.0.0.1:5001"
	DefaultClientBootstrapAddress = "127.0.0.1:5002"
	DefaultClientTimeout          = 10 * time.Second
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// Address is the encrypted directory endpoint of the server.
	// Env: CLIENT_ADDRESS
	Address string `env:"ADDRESS"`

	// BootstrapAddress is the plaintext public key endpoint of the server.
	// Env: CLIENT_BOOTSTRAP_ADDRESS
	BootstrapAddress string `env:"BOOTSTRAP_ADDRESS"`

	// KeyDir holds the client's own key pair.
	// Env: CLIENT_KEY_DIR
	KeyDir string `env:"KEY_DIR"`

	// Timeout bounds one request/response exchange.
	// Env: CLIENT_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

// GetClientConfig builds the client configuration from flags in args and
// CLIENT_* environment variables (flags win), then applies defaults.
// It also returns the positional arguments left after the flags.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var flagCfg ClientConfig

	fs := flag.NewFlagSet("secmsg-client", flag.ContinueOnError)
	fs.StringVar(&flagCfg.Address, "a", "", "Server main endpoint host:port")
	fs.StringVar(&flagCfg.BootstrapAddress, "b", "", "Server bootstrap endpoint host:port")
	fs.StringVar(&flagCfg.KeyDir, "k", "", "Client key pair directory")
	fs.DurationVar(&flagCfg.Timeout, "timeout", 0, "Request timeout (e.g., 10s)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	var envCfg clientEnv
	if err := parseEnv(&envCfg); err != nil {
		return nil, nil, err
	}

	cfg := &ClientConfig{}
	for _, src := range []*ClientConfig{&flagCfg, &envCfg.Client, defaultClientConfig()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Address:          DefaultClientAddress,
		BootstrapAddress: DefaultClientBootstrapAddress,
		KeyDir:           defaultKeyDir("client"),
		Timeout:          DefaultClientTimeout,
	}
}

func (cfg *ClientConfig) validate() error {
	if err := validateAddress("address", cfg.Address); err != nil {
		return errors.Join(ErrInvalidClientConfig, err)
	}
	if err := validateAddress("bootstrap address", cfg.BootstrapAddress); err != nil {
		return errors.Join(ErrInvalidClientConfig, err)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidClientConfig)
	}
	return nil
}
