package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-secmsg-directory/internal/adapter"
	"github.com/MKhiriev/go-secmsg-directory/internal/client"
	"github.com/MKhiriev/go-secmsg-directory/internal/config"
	"github.com/MKhiriev/go-secmsg-directory/internal/crypto"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("secmsg-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	keys, generated, err := crypto.NewKeyStore(cfg.KeyDir).LoadOrGenerate()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading client keys")
	}
	if generated {
		log.Warn().Str("key_dir", cfg.KeyDir).Msg("generated a new client key pair")
	}

	serverAdapter := adapter.NewTCPServerAdapter(*cfg, keys, log)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	app := client.NewApp(serverAdapter, buildInfo, os.Stdout, log)
	if err = app.Run(context.Background(), args); err != nil {
		if errors.Is(err, client.ErrUsage) {
			fmt.Fprintln(os.Stderr, client.Usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
