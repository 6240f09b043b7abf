package service

import (
	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/store"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

type Services struct {
	DirectoryService DirectoryService
}

func NewServices(storages *store.Storages, serverKey models.Key, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		DirectoryService: NewDirectoryService(storages.Directory, DirectoryOptions{
			ServerKey:         serverKey,
			CredentialHashKey: cfg.CredentialHashKey,
			RelayHops:         cfg.RelayHops,
		}, logger),
	}
}
