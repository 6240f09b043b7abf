// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit throttles accepted connections per remote host.
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a host's bucket survives without traffic.
const DefaultIdleTTL = 10 * time.Minute

// sweepEvery is the number of Allow calls between idle-bucket sweeps.
const sweepEvery = 512

// PeerLimiter keeps one token bucket per host. A nil *PeerLimiter allows
// everything, so callers need not special-case a disabled limiter.
type PeerLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu     sync.Mutex
	byHost map[string]*bucket
	calls  uint64
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New returns a limiter admitting rps connections per second per host with
// the given burst. It returns nil (no limiting) when rps or burst is not
// positive.
func New(rps float64, burst int, idleTTL time.Duration) *PeerLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &PeerLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		byHost:  make(map[string]*bucket),
	}
}

// Allow reports whether host may open one more connection at now.
// Empty hosts are never limited.
func (l *PeerLimiter) Allow(host string, now time.Time) bool {
	if l == nil {
		return true
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.byHost[host]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byHost[host] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(now)
	}

	return allowed
}

// sweep drops buckets idle for longer than idleTTL. Callers hold mu.
func (l *PeerLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for host, b := range l.byHost {
		if b.lastSeen.Before(cutoff) {
			delete(l.byHost, host)
		}
	}
}

// Hosts returns the number of tracked hosts.
func (l *PeerLimiter) Hosts() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byHost)
}
