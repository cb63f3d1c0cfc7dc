package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/fintrack/internal/app"
	"github.com/allisson/fintrack/internal/config"
)

type runnable interface {
	Start(ctx context.Context) error
}

// RunServer starts the API server, and the metrics server when enabled, and blocks until
// SIGINT/SIGTERM or a server failure. Encryption is fully initialized before the first
// request is accepted; a bad master key or algorithm aborts startup.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	server, err := container.HTTPServer()
	if err != nil {
		closeContainer(container, logger)
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []runnable{server}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		closeContainer(container, logger)
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, logger, cfg.ShutdownTimeout, container.Shutdown, servers...)
}

// serve runs every server until ctx is done or one of them fails, then calls shutdown
// with a context bounded by timeout.
func serve(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	shutdown func(context.Context) error,
	servers ...runnable,
) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	<-gctx.Done()
	if ctx.Err() != nil {
		logger.Info("shutdown signal received")
	} else {
		logger.Error("server error, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	shutdownErr := shutdown(shutdownCtx)
	if shutdownErr != nil {
		shutdownErr = fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return errors.Join(g.Wait(), shutdownErr)
}

func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
