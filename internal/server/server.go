package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/handler"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/ratelimit"
	"github.com/MKhiriev/go-secmsg-directory/internal/workers"
	"golang.org/x/sync/errgroup"
)

type server struct {
	mainServer      *tcpServer
	bootstrapServer *tcpServer
	httpServer      *httpServer

	// ready is closed once every listener is bound.
	ready chan struct{}

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		ready:  make(chan struct{}),
		logger: logger,
	}

	if handlers == nil || handlers.Directory == nil {
		return nil, errNoServersAreCreated
	}

	if cfg.Address != "" {
		servers.mainServer = newTCPServer(
			handler.EndpointMain,
			cfg.Address,
			handlers.Directory.ServeMainConn,
			workers.NewPool(cfg.MaxConnections),
			ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, ratelimit.DefaultIdleTTL),
			logger,
		)
	}
	if cfg.BootstrapAddress != "" {
		servers.bootstrapServer = newTCPServer(
			handler.EndpointBootstrap,
			cfg.BootstrapAddress,
			handlers.Directory.ServeBootstrapConn,
			nil,
			ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, ratelimit.DefaultIdleTTL),
			logger,
		)
	}
	if cfg.AdminAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg.AdminAddress, logger)
	}

	if servers.mainServer == nil && servers.bootstrapServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
		return
	}
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Run(ctx context.Context) error {
	if err := s.listen(); err != nil {
		s.Shutdown()
		return err
	}
	close(s.ready)

	g, gctx := errgroup.WithContext(ctx)

	// launch all created servers
	if s.mainServer != nil {
		g.Go(func() error { return s.mainServer.serve(gctx) })
	}
	if s.bootstrapServer != nil {
		g.Go(func() error { return s.bootstrapServer.serve(gctx) })
	}
	if s.httpServer != nil {
		g.Go(s.httpServer.serve)
	}

	// a signal or a failed listener stops everything
	g.Go(func() error {
		<-gctx.Done()
		s.Shutdown()
		return nil
	})

	return g.Wait()
}

func (s *server) listen() error {
	if s.mainServer != nil {
		if err := s.mainServer.listen(); err != nil {
			return err
		}
	}
	if s.bootstrapServer != nil {
		if err := s.bootstrapServer.listen(); err != nil {
			return err
		}
	}
	if s.httpServer != nil {
		if err := s.httpServer.listen(); err != nil {
			return err
		}
	}
	return nil
}

func (s *server) Shutdown() {
	// admin first so health checks fail while the directory drains
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	if s.bootstrapServer != nil {
		s.bootstrapServer.Shutdown()
	}

	if s.mainServer != nil {
		s.mainServer.Shutdown()
	}
}
