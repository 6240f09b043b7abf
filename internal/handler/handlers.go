package handler

import (
	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/handler/http"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/service"
	"github.com/MKhiriev/go-secmsg-directory/internal/wire"
)

type Handlers struct {
	Directory *Dispatcher
	HTTP      *http.Handler
}

func NewHandlers(services *service.Services, cipher crypto.EnvelopeCipher, cfg config.Server, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Address == "" && cfg.BootstrapAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	handlers := &Handlers{
		Directory: NewDispatcher(services.DirectoryService, cipher, DispatcherOptions{
			PeerPort:     cfg.PeerPort,
			Limits:       wire.Limits{MaxPayloadBytes: cfg.MaxFrameBytes},
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}, logger),
	}

	if cfg.AdminAddress != "" {
		handlers.HTTP = http.NewHandler(services, version, logger)
	}

	return handlers, nil
}
