// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the directory server.
//
// Collectors are registered on the default registry the first time any
// recorder is used, so packages may record without coordinating startup
// order. Handler exposes the registry for the admin endpoint.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "secmsg"

// Connection outcomes.
const (
	ConnectionHandled  = "handled"
	ConnectionAborted  = "aborted"
	ConnectionRejected = "rejected"
)

var (
	registerOnce sync.Once

	directorySize atomic.Pointer[func() int]

	connections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "connections_total",
			Help:      "Accepted connections by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "requests_total",
			Help:      "Dispatched requests by endpoint, request kind and response kind.",
		},
		[]string{"endpoint", "kind", "outcome"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "request_duration_seconds",
			Help:      "Time from frame read to response write.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "kind"},
	)
	users = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "users",
			Help:      "Registered users.",
		},
		func() float64 {
			if fn := directorySize.Load(); fn != nil {
				return float64((*fn)())
			}
			return 0
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(connections, requests, requestDuration, users)
	})
}

// SetDirectorySize installs the function sampled by the users gauge.
func SetDirectorySize(fn func() int) {
	RegisterMetrics()
	directorySize.Store(&fn)
}

func RecordConnection(endpoint, outcome string) {
	RegisterMetrics()
	connections.WithLabelValues(endpoint, outcome).Inc()
}

func RecordRequest(endpoint, kind, outcome string, duration time.Duration) {
	RegisterMetrics()
	requests.WithLabelValues(endpoint, kind, outcome).Inc()
	requestDuration.WithLabelValues(endpoint, kind).Observe(duration.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
