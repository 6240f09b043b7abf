// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/metrics"
	"github.com/MKhiriev/go-secmsg-directory/internal/ratelimit"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/workers"
)

const (
	maxConsecutiveAcceptErrors = 10
	acceptBackoffStep          = 100 * time.Millisecond
	maxAcceptBackoff           = 2 * time.Second
)

// connHandler serves one accepted connection and closes it.
type connHandler func(ctx context.Context, conn net.Conn) error

// tcpServer runs one accept loop.
//
// With a nil spawner connections are handled inline, so the next accept
// waits for the current exchange to finish. Live connections are tracked
// so Shutdown can interrupt peers that never send or read.
type tcpServer struct {
	endpoint string
	address  string
	handle   connHandler
	spawner  workers.Spawner
	limiter  *ratelimit.PeerLimiter

	listener net.Listener
	closing  atomic.Bool
	stopOnce sync.Once

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	draining bool

	logger *logger.Logger
}

func newTCPServer(endpoint, address string, handle connHandler, spawner workers.Spawner, limiter *ratelimit.PeerLimiter, logger *logger.Logger) *tcpServer {
	return &tcpServer{
		endpoint: endpoint,
		address:  address,
		handle:   handle,
		spawner:  spawner,
		limiter:  limiter,
		logger:   logger,
	}
}

func (t *tcpServer) listen() error {
	ln, err := net.Listen("tcp", t.address)
	if err != nil {
		return fmt.Errorf("listen %s endpoint on %s: %w", t.endpoint, t.address, err)
	}
	t.listener = ln
	t.logger.Info().Str("endpoint", t.endpoint).Str("addr", ln.Addr().String()).Msg("listening")
	return nil
}

// Addr returns the bound address, or nil before listen.
func (t *tcpServer) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// serve accepts until the listener is closed. Transient accept errors are
// retried with a linear backoff; a run of them ends the loop with an error.
func (t *tcpServer) serve(ctx context.Context) error {
	consecutiveErrors := 0
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if t.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			consecutiveErrors++
			t.logger.Error().Err(err).
				Str("endpoint", t.endpoint).
				Int("consecutive", consecutiveErrors).
				Msg("accept error")
			if consecutiveErrors >= maxConsecutiveAcceptErrors {
				return fmt.Errorf("%s endpoint: %w: %w", t.endpoint, errTooManyAcceptErrors, err)
			}

			backoff := min(time.Duration(consecutiveErrors)*acceptBackoffStep, maxAcceptBackoff)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			continue
		}
		consecutiveErrors = 0

		if !t.limiter.Allow(utils.HostOf(conn.RemoteAddr()), time.Now()) {
			t.logger.Debug().Str("endpoint", t.endpoint).Str("peer", conn.RemoteAddr().String()).Msg("connection rate limited")
			metrics.RecordConnection(t.endpoint, metrics.ConnectionRejected)
			conn.Close()
			continue
		}

		t.dispatch(ctx, conn)
	}
}

func (t *tcpServer) dispatch(ctx context.Context, conn net.Conn) {
	if !t.track(conn) {
		metrics.RecordConnection(t.endpoint, metrics.ConnectionRejected)
		conn.Close()
		return
	}

	if t.spawner == nil {
		// handler errors are logged by the handler itself
		_ = t.handle(ctx, conn)
		t.untrack(conn)
		return
	}

	err := t.spawner.Go(ctx, func() {
		defer t.untrack(conn)
		_ = t.handle(ctx, conn)
	})
	if err != nil {
		t.untrack(conn)
		metrics.RecordConnection(t.endpoint, metrics.ConnectionRejected)
		conn.Close()
	}
}

// track registers conn as live. It reports false once draining has begun.
func (t *tcpServer) track(conn net.Conn) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draining {
		return false
	}
	if t.conns == nil {
		t.conns = make(map[net.Conn]struct{})
	}
	t.conns[conn] = struct{}{}
	return true
}

func (t *tcpServer) untrack(conn net.Conn) {
	t.mu.Lock()
	delete(t.conns, conn)
	t.mu.Unlock()
}

// drain stops tracking new connections and expires the deadlines of the
// live ones, so blocked reads and writes return with a timeout error.
func (t *tcpServer) drain() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.draining = true
	now := time.Now()
	for conn := range t.conns {
		if err := conn.SetDeadline(now); err != nil {
			t.logger.Debug().Err(err).Str("endpoint", t.endpoint).Msg("expiring connection deadline")
		}
	}
	if n := len(t.conns); n > 0 {
		t.logger.Info().Str("endpoint", t.endpoint).Int("connections", n).Msg("interrupting live connections")
	}
}

// Shutdown closes the listener and waits for spawned handlers. Live
// connections are interrupted first.
func (t *tcpServer) Shutdown() {
	t.stopOnce.Do(func() {
		t.closing.Store(true)
		if t.listener != nil {
			if err := t.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				t.logger.Error().Err(err).Str("endpoint", t.endpoint).Msg("closing listener")
			}
		}
		t.drain()
		if t.spawner != nil {
			t.spawner.Wait()
		}
		t.logger.Info().Str("endpoint", t.endpoint).Msg("endpoint stopped")
	})
}
