package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/issuehub/pkg/cli/config"
	"github.com/secmon-lab/issuehub/pkg/controller/server"
	"github.com/secmon-lab/issuehub/pkg/infra"
	"github.com/secmon-lab/issuehub/pkg/usecase"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
	"github.com/secmon-lab/issuehub/pkg/utils/safe"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		redisCfg   config.Redis
		encryption config.Encryption
		storage    config.Storage
		githubCfg  config.GitHub
		sentryCfg  config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ISSUEHUB_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			redisCfg.Flags(),
			encryption.Flags(),
			storage.Flags(),
			githubCfg.Flags(),
			sentryCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Redis", redisCfg),
				slog.Any("Encryption", encryption),
				slog.Any("Storage", storage),
				slog.Any("GitHub", githubCfg),
				slog.Any("Sentry", sentryCfg),
			)

			if err := sentryCfg.Configure(ctx); err != nil {
				return err
			}

			keyedStore, err := redisCfg.NewStore(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(keyedStore)

			tokenCipher, err := encryption.NewCipher(ctx)
			if err != nil {
				return err
			}

			clients := infra.New(
				infra.WithKeyedStore(keyedStore),
				infra.WithCipher(tokenCipher),
				infra.WithGitHub(githubCfg.NewClient()),
			)

			uc := usecase.New(clients, usecase.WithRepositoryTTL(storage.RepositoryTTL()))
			s := server.New(uc)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
