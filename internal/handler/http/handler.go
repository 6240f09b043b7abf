package http

import (
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/service"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
)

type Handler struct {
	services *service.Services
	version  string
	ids      *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("admin http handler created")
	return &Handler{
		services: services,
		version:  version,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
