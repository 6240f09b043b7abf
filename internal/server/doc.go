// Package server wires and runs the listeners of the directory server.
//
// The main endpoint serves every accepted connection on its own goroutine,
// bounded by an optional worker pool. The bootstrap endpoint serves
// connections one at a time on its accept goroutine. An optional admin HTTP
// server exposes health and metrics. All of them start together and stop
// together on a termination signal.
package server
