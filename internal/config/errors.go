package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [ClientConfig.validate]. The concrete problem is wrapped with them.
var (
	// ErrInvalidServerConfig indicates invalid listener or connection
	// settings (for example, a malformed address or a negative timeout).
	ErrInvalidServerConfig = errors.New("invalid server configuration")

	// ErrInvalidAppConfig indicates invalid directory settings (for
	// example, a negative relay hop count).
	ErrInvalidAppConfig = errors.New("invalid app configuration")

	// ErrInvalidClientConfig indicates invalid client settings.
	ErrInvalidClientConfig = errors.New("invalid client configuration")

	// ErrUnsupportedFileFormat is returned when the config file extension
	// is not one of .json, .toml, .yaml or .yml.
	ErrUnsupportedFileFormat = errors.New("unsupported config file format")
)
