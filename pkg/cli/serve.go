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
	"github.com/secmon-lab/respitrack/pkg/cli/config"
	controller "github.com/secmon-lab/respitrack/pkg/controller/http"
	"github.com/secmon-lab/respitrack/pkg/service/export"
	"github.com/secmon-lab/respitrack/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		dashboardCfg config.Dashboard
		chartCfg     config.Chart
	)

	flags := joinFlags(
		serverCfg.Flags(),
		dashboardCfg.Flags(),
		chartCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting respitrack server",
				slog.Any("server", serverCfg),
				slog.Any("dashboard", dashboardCfg),
				slog.Any("chart", chartCfg),
			)

			dataset, dashboardConfig, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}

			renderer, err := chartCfg.Configure()
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboard(dataset, usecase.WithConfig(dashboardConfig))

			// A missing or broken data file is reported on the page, not at startup
			if _, err := dashboardUC.Table(ctx); err != nil {
				logger.Warn("Data file cannot be used yet",
					"path", dataset.Path(),
					"error", err,
				)
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, dashboardUC, renderer, export.NewCSV())
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
