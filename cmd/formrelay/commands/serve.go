package commands

import (
	"log/slog"
	"net"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay"
	"github.com/dmitrymomot/formrelay/internal/config"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// serve: run the HTTP server until SIGINT/SIGTERM.
func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the relay HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			log := logger.NewWithSentry(cfg.Sentry, cfg.Log, middlewares.RequestIDExtractor()).
				With(slog.String("app", "formrelay"))

			app, err := formrelay.New(cfg, formrelay.WithLogger(log))
			if err != nil {
				log.Error("failed to build app", slog.Any("error", err))
				return err
			}

			err = app.Run(cfg.Address,
				formrelay.Logger(log),
				formrelay.ShutdownTimeout(cfg.ShutdownTimeout),
				formrelay.ShutdownHook(logger.SentryFlushHook(cfg.Sentry)),
				formrelay.WithContext(cmd.Context()),
				formrelay.OnListen(func(addr net.Addr) {
					log.Info("relay listening",
						slog.String("addr", addr.String()),
						slog.String("path", cfg.RelayPath),
						slog.String("provider", cfg.Provider),
					)
				}),
			)
			if err != nil {
				log.Error("server error", slog.Any("error", err))
			}
			return err
		},
	}
}
