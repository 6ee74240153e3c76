package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/woodhull/taskmgr/internal/instrumentation"
	"github.com/woodhull/taskmgr/internal/interp"
	"github.com/woodhull/taskmgr/internal/logging"
	"github.com/woodhull/taskmgr/internal/runner"
	"github.com/woodhull/taskmgr/internal/server"
	"github.com/woodhull/taskmgr/internal/store"
)

// runReplay executes all commands from the input file. Command results go
// to the command's stdout; logs and metrics stay on their own channels so
// the output contract is never polluted.
func runReplay(cmd *cobra.Command, path string) error {
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := setupLogging(cmd)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		// Instrumentation must never block the replay itself.
		logger.Warn("instrumentation disabled", logging.Err(err))
		provider = nil
	}
	defer func() {
		if provider == nil {
			return
		}
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	metricsServer, err := startMetricsServer(cmd, logger, provider)
	if err != nil {
		return err
	}
	defer func() {
		if metricsServer == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}()

	opts := []interp.Option{interp.WithLogger(logger)}
	if provider != nil && provider.Enabled() {
		opts = append(opts,
			interp.WithMetrics(provider.Metrics()),
			interp.WithTracer(provider.Tracer("taskmgr")),
		)
	}
	in := interp.New(store.New(), opts...)

	r := runner.New(in, logger)
	_, err = r.RunFile(ctx, path, cmd.OutOrStdout())
	return err
}

// setupLogging configures the process-wide logger from flags, with env
// var fallbacks when the flags were not set.
func setupLogging(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv("TASKMGR_LOG_LEVEL")
	}

	format, _ := cmd.Flags().GetString("log-format")
	if format == "" {
		format = os.Getenv("TASKMGR_LOG_FORMAT")
	}
	if format == "" {
		format = logging.FormatText
	}

	return logging.Setup(level, format)
}

// startMetricsServer exposes /metrics while the replay runs, when enabled
// via flag or environment and the provider has the prometheus exporter.
func startMetricsServer(cmd *cobra.Command, logger *slog.Logger, provider *instrumentation.Provider) (*server.MetricsServer, error) {
	enabled, _ := cmd.Flags().GetBool("metrics-enabled")
	if !enabled && os.Getenv("METRICS_ENABLED") == "true" {
		enabled = true
	}
	if !enabled {
		return nil, nil
	}
	if provider == nil || !provider.Enabled() || !provider.HasPrometheusExporter() {
		logger.Warn("metrics server not started: prometheus exporter is not configured")
		return nil, nil
	}

	addr, _ := cmd.Flags().GetString("metrics-addr")
	if !cmd.Flags().Changed("metrics-addr") {
		if envAddr := os.Getenv("METRICS_ADDR"); envAddr != "" {
			addr = envAddr
		}
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:     addr,
		Provider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	// Use ready channel to confirm metrics server started successfully
	metricsReady := make(chan struct{})
	metricsErr := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
			metricsErr <- err
		}
		close(metricsErr)
	}()

	select {
	case <-metricsReady:
		logger.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
	case err := <-metricsErr:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}

	return metricsServer, nil
}
