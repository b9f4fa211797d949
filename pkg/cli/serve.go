package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/cli/config"
	controller "github.com/m-mizutani/salvage/pkg/controller/http"
	"github.com/m-mizutani/salvage/pkg/infra/storage"
	"github.com/m-mizutani/salvage/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := serverCfg.LoadFile(c.IsSet); err != nil {
				return err
			}

			logger.Info("Starting salvage server",
				slog.String("addr", serverCfg.Addr),
				slog.Duration("artifact_ttl", serverCfg.ArtifactTTL),
			)

			// Artifact retention and conversion pipeline
			store := storage.NewMemory(storage.WithTTL(serverCfg.ArtifactTTL))
			convertUC := usecase.NewConvert(store)

			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
			}
			if serverCfg.MaxBodySize > 0 {
				opts = append(opts, controller.WithMaxBodySize(serverCfg.MaxBodySize))
			}

			server, err := controller.NewServer(ctx, convertUC, store, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
