package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/handler"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/metrics"
	"github.com/MKhiriev/go-secmsg-directory/internal/server"
	"github.com/MKhiriev/go-secmsg-directory/internal/service"
	"github.com/MKhiriev/go-secmsg-directory/internal/store"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("secmsg-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().
		Str("address", cfg.Server.Address).
		Str("bootstrap_address", cfg.Server.BootstrapAddress).
		Str("admin_address", cfg.Server.AdminAddress).
		Str("key_dir", cfg.App.KeyDir).
		Int("relay_hops", cfg.App.RelayHops).
		Bool("credential_hashing", cfg.App.CredentialHashKey != "").
		Msg("received configs")

	keys, generated, err := crypto.NewKeyStore(cfg.App.KeyDir).LoadOrGenerate()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading server keys")
	}
	log.Info().
		Str("public_key", keys.Public.String()).
		Bool("generated", generated).
		Msg("server key pair ready")

	storages := store.NewStorages(log)
	services := service.NewServices(storages, keys.Public, cfg.App, log)

	metrics.SetDirectorySize(func() int {
		return storages.Directory.Len(context.Background())
	})

	handlers, err := handler.NewHandlers(services, crypto.NewEnvelopeCipher(keys), cfg.Server, buildInfo.BuildVersion(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
