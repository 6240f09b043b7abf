package server

import "context"

// Server defines the lifecycle contract of the directory server.
//
// RunServer blocks until a termination signal arrives and all listeners
// have stopped; Run does the same but stops when ctx is done instead.
// Shutdown stops accepting, closes listeners and waits for in-flight
// connections.
type Server interface {
	// RunServer starts serving and blocks until SIGTERM, SIGINT or SIGQUIT.
	RunServer()

	// Run starts serving and blocks until ctx is done or a listener fails.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
