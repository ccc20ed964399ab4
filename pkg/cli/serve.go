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
	"github.com/screfy/ldw/pkg/cli/config"
	controller "github.com/screfy/ldw/pkg/controller/http"
	"github.com/screfy/ldw/pkg/infra/discord"
	"github.com/screfy/ldw/pkg/infra/linear"
	"github.com/screfy/ldw/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		relayCfg  config.Relay
	)

	flags := append(serverCfg.Flags(), relayCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting ldw server",
				slog.String("addr", serverCfg.Addr),
				slog.String("env", relayCfg.Env),
			)

			// Create use case
			var ucOpts []usecase.Option
			if relayCfg.Username != "" {
				ucOpts = append(ucOpts, usecase.WithUsername(relayCfg.Username))
			}
			if relayCfg.AvatarURL != "" {
				ucOpts = append(ucOpts, usecase.WithAvatarURL(relayCfg.AvatarURL))
			}
			if relayCfg.BrandColor != "" {
				ucOpts = append(ucOpts, usecase.WithBrandColor(relayCfg.BrandColor))
			}
			relayUC := usecase.NewRelay(
				linear.NewFactory(relayCfg.LinearAPI),
				discord.NewClient(""),
				ucOpts...,
			)

			// Create HTTP server with options
			serverOpts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithEnvMode(relayCfg.EnvMode()),
			}
			if len(relayCfg.TrustedAddrs) > 0 {
				serverOpts = append(serverOpts, controller.WithTrustedAddrs(relayCfg.TrustedAddrs))
			}
			server, err := controller.NewServer(ctx, relayUC, serverOpts...)
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
