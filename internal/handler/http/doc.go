// Package http implements the optional admin HTTP surface of the directory
// server.
//
// It exposes liveness, build version, directory statistics and Prometheus
// metrics. Every request is tagged with an X-Trace-ID and access-logged
// before it reaches a handler. The admin surface never touches the
// directory protocol itself.
package http
