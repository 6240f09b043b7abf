package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secmsg-directory/internal/adapter"
	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/models"
)

const (
	CommandPublicKey = "pubkey"
	CommandRegister  = "register"
	CommandLogin     = "login"
	CommandConnect   = "connect"
	CommandVersion   = "version"
)

var _ Client = (*App)(nil)

type App struct {
	serverAdapter adapter.ServerAdapter
	buildInfo     models.AppBuildInfo
	out           io.Writer
	logger        *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	return &App{
		serverAdapter: serverAdapter,
		buildInfo:     buildInfo,
		out:           out,
		logger:        logger,
	}
}

// Run executes one command. Records and routes are printed as indented
// JSON, the server key as base64.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	command, params := args[0], args[1:]
	a.logger.Debug().Str("command", command).Int("args", len(params)).Msg("running command")

	switch {
	case command == CommandVersion && len(params) == 0:
		_, err := fmt.Fprintf(a.out, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
			a.buildInfo.BuildVersion(), a.buildInfo.BuildDate(), a.buildInfo.BuildCommit())
		return err

	case command == CommandPublicKey && len(params) == 0:
		key, err := a.serverAdapter.FetchPublicKey(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, key.String())
		return err

	case command == CommandRegister && len(params) == 2:
		view, err := a.serverAdapter.Register(ctx, params[0], params[1])
		if err != nil {
			return err
		}
		return a.printJSON(view)

	case command == CommandLogin && len(params) == 2:
		view, err := a.serverAdapter.Login(ctx, params[0], params[1])
		if err != nil {
			return err
		}
		return a.printJSON(view)

	case command == CommandConnect && len(params) == 1:
		route, err := a.serverAdapter.Connect(ctx, params[0])
		if err != nil {
			return err
		}
		return a.printJSON(route)

	default:
		return fmt.Errorf("%w: %q with %d argument(s)", ErrUsage, command, len(params))
	}
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
