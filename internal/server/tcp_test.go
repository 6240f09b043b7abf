package server

import (
	"context"
	"errors"
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
)

// scriptedListener hands out the queued results, then blocks until closed.
type scriptedListener struct {
	results chan acceptResult
	closed  chan struct{}
}

type acceptResult struct {
	conn net.Conn
	err  error
}

func newScriptedListener(results ...acceptResult) *scriptedListener {
	l := &scriptedListener{
		results: make(chan acceptResult, len(results)),
		closed:  make(chan struct{}),
	}
	for _, r := range results {
		l.results <- r
	}
	return l
}

func (l *scriptedListener) Accept() (net.Conn, error) {
	select {
	case r := <-l.results:
		return r.conn, r.err
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

func (l *scriptedListener) Close() error {
	close(l.closed)
	return nil
}

func (l *scriptedListener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5001}
}

type rejectingSpawner struct{}

func (rejectingSpawner) Go(context.Context, func()) error {
	return context.Canceled
}

func (rejectingSpawner) Wait() {}

type closeTracker struct {
	net.Conn
	closed atomic.Bool
}

func (c *closeTracker) Close() error {
	c.closed.Store(true)
	return c.Conn.Close()
}

func (c *closeTracker) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 40000}
}

// liveConns returns the number of tracked connections.
func (t *tcpServer) liveConns() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

func TestTCPServer_RejectedBySpawnerClosesConn(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()
	conn := &closeTracker{Conn: peer}

	var handled atomic.Bool
	srv := newTCPServer("main", "", func(context.Context, net.Conn) error {
		handled.Store(true)
		return nil
	}, rejectingSpawner{}, nil, logger.Nop())
	srv.listener = newScriptedListener(acceptResult{conn: conn})

	done := make(chan error, 1)
	go func() { done <- srv.serve(context.Background()) }()

	assert.Eventually(t, conn.closed.Load, time.Second, 10*time.Millisecond)
	srv.Shutdown()
	require.NoError(t, <-done)
	assert.False(t, handled.Load())
}

func TestTCPServer_InlineHandling(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()

	handled := make(chan net.Conn, 1)
	srv := newTCPServer("bootstrap", "", func(_ context.Context, c net.Conn) error {
		handled <- c
		return c.Close()
	}, nil, nil, logger.Nop())
	srv.listener = newScriptedListener(acceptResult{conn: &closeTracker{Conn: peer}})

	done := make(chan error, 1)
	go func() { done <- srv.serve(context.Background()) }()

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("connection was not handled")
	}
	srv.Shutdown()
	require.NoError(t, <-done)
}

func TestTCPServer_AcceptErrorBackoffStopsOnCancel(t *testing.T) {
	srv := newTCPServer("main", "", nil, nil, nil, logger.Nop())
	srv.listener = newScriptedListener(acceptResult{err: errors.New("temporary failure")})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("accept loop kept running after cancel")
	}
}

func TestTCPServer_ShutdownIsIdempotent(t *testing.T) {
	srv := newTCPServer("main", "", nil, nil, nil, logger.Nop())
	srv.listener = newScriptedListener()

	srv.Shutdown()
	srv.Shutdown()
	assert.True(t, srv.closing.Load())
}

func TestTCPServer_ShutdownInterruptsIdleInlineConn(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()

	handlerErr := make(chan error, 1)
	srv := newTCPServer("bootstrap", "", func(_ context.Context, c net.Conn) error {
		defer c.Close()
		_, err := c.Read(make([]byte, 1))
		handlerErr <- err
		return err
	}, nil, nil, logger.Nop())
	srv.listener = newScriptedListener(acceptResult{conn: &closeTracker{Conn: peer}})

	done := make(chan error, 1)
	go func() { done <- srv.serve(context.Background()) }()

	require.Eventually(t, func() bool { return srv.liveConns() == 1 }, time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(stopped)
	}()

	select {
	case err := <-handlerErr:
		assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("idle connection was not interrupted")
	}
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not return")
	}
	require.NoError(t, <-done)
	assert.Zero(t, srv.liveConns())
}

func TestTCPServer_ConnAfterDrainIsClosed(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()
	conn := &closeTracker{Conn: peer}

	var handled atomic.Bool
	srv := newTCPServer("main", "", func(context.Context, net.Conn) error {
		handled.Store(true)
		return nil
	}, nil, nil, logger.Nop())

	srv.drain()
	srv.dispatch(context.Background(), conn)

	assert.True(t, conn.closed.Load())
	assert.False(t, handled.Load())
	assert.Zero(t, srv.liveConns())
}
