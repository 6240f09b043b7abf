// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-secmsg-directory/internal/metrics"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/wire"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

// exchangeInfo describes a completed request for logs and metrics.
type exchangeInfo struct {
	kind    models.RequestKind
	outcome models.OutcomeKind
}

// exchangeFunc turns one request frame payload into one response payload.
type exchangeFunc func(ctx context.Context, conn net.Conn, payload []byte) ([]byte, exchangeInfo, error)

// ServeMainConn handles one connection on the encrypted endpoint: read a
// frame, open it, dispatch, seal the response for its route and write it
// back. The connection is always closed on return.
//
// A nil error means a response frame was written. Any error means the
// connection was dropped without a reply.
func (d *Dispatcher) ServeMainConn(ctx context.Context, conn net.Conn) error {
	return d.serve(ctx, conn, EndpointMain, d.exchangeMain)
}

// ServeBootstrapConn handles one connection on the plaintext bootstrap
// endpoint. Request and response are unencrypted protocol messages.
func (d *Dispatcher) ServeBootstrapConn(ctx context.Context, conn net.Conn) error {
	return d.serve(ctx, conn, EndpointBootstrap, d.exchangeBootstrap)
}

func (d *Dispatcher) serve(ctx context.Context, conn net.Conn, endpoint string, exchange exchangeFunc) (err error) {
	start := time.Now()

	connID := d.ids.Generate()
	log := d.logger.WithConnection(connID, endpoint, remoteString(conn))
	ctx = log.WithContext(utils.WithConnID(ctx, connID))

	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errHandlerPanic, r)
			log.Error().Str("stack", string(debug.Stack())).Msg("recovered from panic")
		}

		if err != nil {
			log.Warn().Err(err).Str("reason", abortReason(err)).Msg("connection aborted")
			metrics.RecordConnection(endpoint, metrics.ConnectionAborted)
			return
		}
		metrics.RecordConnection(endpoint, metrics.ConnectionHandled)
	}()

	if d.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(d.readTimeout)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
	}

	payload, err := wire.ReadFrame(conn, d.limits)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	reply, info, err := exchange(ctx, conn, payload)
	if err != nil {
		return err
	}

	if d.writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(d.writeTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}

	if err := wire.WriteFrame(conn, reply, d.limits); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordRequest(endpoint, string(info.kind), string(info.outcome), elapsed)
	log.Info().
		Str("kind", string(info.kind)).
		Str("outcome", string(info.outcome)).
		Dur("duration", elapsed).
		Msg("request served")

	return nil
}

func (d *Dispatcher) exchangeMain(ctx context.Context, conn net.Conn, payload []byte) ([]byte, exchangeInfo, error) {
	observed, err := utils.PeerAddress(conn.RemoteAddr(), d.peerPort)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("derive peer address: %w", err)
	}

	msg, err := d.cipher.Open(payload)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("open request: %w", err)
	}

	resp, route, err := d.DispatchMain(ctx, msg, observed)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("dispatch request: %w", err)
	}

	envelope, err := d.cipher.Seal(resp, route)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("seal response: %w", err)
	}

	return envelope.Data, exchangeInfo{kind: msg.Server.Kind, outcome: resp.User.Response.Kind}, nil
}

func (d *Dispatcher) exchangeBootstrap(ctx context.Context, _ net.Conn, payload []byte) ([]byte, exchangeInfo, error) {
	msg, err := models.DecodeMessage(payload)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("decode request: %w", err)
	}

	resp, err := d.DispatchBootstrap(ctx, msg)
	if err != nil {
		return nil, exchangeInfo{}, fmt.Errorf("dispatch request: %w", err)
	}

	reply, err := models.EncodeMessage(resp)
	if err != nil {
		return nil, exchangeInfo{}, err
	}

	return reply, exchangeInfo{kind: msg.Server.Kind, outcome: resp.User.Response.Kind}, nil
}

func remoteString(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
