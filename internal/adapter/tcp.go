package adapter

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/wire"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

type tcpServerAdapter struct {
	address          string
	bootstrapAddress string
	timeout          time.Duration
	limits           wire.Limits

	keys crypto.KeyPair

	mu        sync.RWMutex
	serverKey models.Key

	logger *logger.Logger
}

// NewTCPServerAdapter constructs a [ServerAdapter] talking to the endpoints
// in cfg on behalf of the holder of keys.
func NewTCPServerAdapter(cfg config.ClientConfig, keys crypto.KeyPair, logger *logger.Logger) ServerAdapter {
	return &tcpServerAdapter{
		address:          cfg.Address,
		bootstrapAddress: cfg.BootstrapAddress,
		timeout:          cfg.Timeout,
		limits:           wire.DefaultLimits(),
		keys:             keys,
		logger:           logger,
	}
}

func (a *tcpServerAdapter) FetchPublicKey(ctx context.Context) (models.Key, error) {
	req, err := models.EncodeMessage(models.NewPublicKeyRequest(a.keys.Public))
	if err != nil {
		return models.Key{}, err
	}

	reply, err := a.roundTrip(ctx, a.bootstrapAddress, req)
	if err != nil {
		return models.Key{}, err
	}

	msg, err := models.DecodeMessage(reply)
	if err != nil {
		return models.Key{}, err
	}

	outcome, err := responseOf(msg)
	if err != nil {
		return models.Key{}, err
	}
	if outcome.Kind != models.OutcomePublicKey || outcome.PublicKey == nil {
		return models.Key{}, fmt.Errorf("%w: %s to public key request", ErrUnexpectedResponse, outcome.Kind)
	}

	a.mu.Lock()
	a.serverKey = *outcome.PublicKey
	a.mu.Unlock()

	a.logger.Debug().Str("server_key", outcome.PublicKey.String()).Msg("server public key fetched")
	return *outcome.PublicKey, nil
}

func (a *tcpServerAdapter) Register(ctx context.Context, handle, credential string) (models.UserView, error) {
	return a.userRequest(ctx, models.NewRegisterRequest(handle, credential, a.keys.Public))
}

func (a *tcpServerAdapter) Login(ctx context.Context, handle, credential string) (models.UserView, error) {
	return a.userRequest(ctx, models.NewLoginRequest(handle, credential, a.keys.Public))
}

func (a *tcpServerAdapter) Connect(ctx context.Context, target string) (models.Route, error) {
	outcome, err := a.encrypted(ctx, models.NewConnectRequest(target, a.keys.Public))
	if err != nil {
		return nil, err
	}
	if outcome.Kind != models.OutcomeConnection {
		return nil, fmt.Errorf("%w: %s to connect request", ErrUnexpectedResponse, outcome.Kind)
	}
	return outcome.Route, nil
}

func (a *tcpServerAdapter) userRequest(ctx context.Context, req models.MessageType) (models.UserView, error) {
	outcome, err := a.encrypted(ctx, req)
	if err != nil {
		return models.UserView{}, err
	}
	if outcome.Kind != models.OutcomeUser || outcome.User == nil {
		return models.UserView{}, fmt.Errorf("%w: %s to %s request", ErrUnexpectedResponse, outcome.Kind, req.Server.Kind)
	}
	return *outcome.User, nil
}

// encrypted performs one exchange on the main endpoint, fetching the server
// key first if it is not known yet. Error outcomes become *ResponseError.
func (a *tcpServerAdapter) encrypted(ctx context.Context, req models.MessageType) (models.ServerResponse, error) {
	serverKey, err := a.knownServerKey(ctx)
	if err != nil {
		return models.ServerResponse{}, err
	}

	payload, err := crypto.SealForServer(req, serverKey)
	if err != nil {
		return models.ServerResponse{}, err
	}

	reply, err := a.roundTrip(ctx, a.address, payload)
	if err != nil {
		return models.ServerResponse{}, err
	}

	msg, err := crypto.OpenFromServer(reply, serverKey, a.keys)
	if err != nil {
		return models.ServerResponse{}, fmt.Errorf("open server response: %w", err)
	}

	outcome, err := responseOf(msg)
	if err != nil {
		return models.ServerResponse{}, err
	}
	if outcome.Kind == models.OutcomeError {
		return models.ServerResponse{}, &ResponseError{Message: outcome.Error}
	}
	return outcome, nil
}

func (a *tcpServerAdapter) knownServerKey(ctx context.Context) (models.Key, error) {
	a.mu.RLock()
	key := a.serverKey
	a.mu.RUnlock()

	if !key.IsZero() {
		return key, nil
	}
	return a.FetchPublicKey(ctx)
}

// roundTrip dials address, writes payload as one frame and reads one frame
// back. The connection never outlives the exchange.
func (a *tcpServerAdapter) roundTrip(ctx context.Context, address string, payload []byte) ([]byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}

	if err := wire.WriteFrame(conn, payload, a.limits); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	reply, err := wire.ReadFrame(conn, a.limits)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return reply, nil
}

func responseOf(msg models.MessageType) (models.ServerResponse, error) {
	if msg.Direction != models.DirectionUser || msg.User == nil || msg.User.Response == nil {
		return models.ServerResponse{}, fmt.Errorf("%w: not a server response", ErrUnexpectedResponse)
	}
	return *msg.User.Response, nil
}
