package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	var addr string
	var logFormat string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statement API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			srv := server.New(server.Config{
				Addr:           cfg.Server.Addr,
				MaxUploadBytes: cfg.MaxUploadBytes(),
				ReadTimeout:    cfg.Server.ReadTimeout,
				WriteTimeout:   cfg.Server.WriteTimeout,
				Version:        buildinfo.Version,
				Log:            log,
				Service:        svc,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "log format: console or json (default from config)")

	return cmd
}
