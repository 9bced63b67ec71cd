// Command httpserver runs the component's routes on a native net/http host,
// for local development without a WASI runtime.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shravanasati/hellowasm/config"
	"github.com/shravanasati/hellowasm/logging"
	"github.com/shravanasati/hellowasm/middleware"
	"github.com/shravanasati/hellowasm/router"
	"github.com/shravanasati/hellowasm/routes"
	"github.com/shravanasati/hellowasm/server"
	"github.com/shravanasati/hellowasm/telemetry"
	"github.com/shravanasati/hellowasm/upstream"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.BaseConfigFile, "path to the TOML configuration file")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	tracing, err := middleware.Tracing(nil, nil)
	if err != nil {
		return fmt.Errorf("tracing middleware: %w", err)
	}

	access := middleware.Logging(logger)
	if cfg.Logging.Format.Resolve(int(os.Stdout.Fd())) == logging.FormatColor {
		access = middleware.LoggingColored(logger)
	}

	users := upstream.New(upstream.Options{
		URL:         cfg.Upstream.UsersURL,
		MaxBodySize: cfg.Upstream.MaxBodyBytes(),
		HTTPClient:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		Logger:      logger.Named("upstream"),
	})

	app := routes.New(routes.Options{
		Users:       users,
		Logger:      logger,
		Middlewares: []router.Middleware{middleware.RequestID(), access, tracing},
	})

	srv, err := server.Serve(server.ServerOpts{
		Address:        cfg.Server.Address,
		ReadTimeout:    cfg.Server.ReadTimeoutDuration(),
		WriteTimeout:   cfg.Server.WriteTimeoutDuration(),
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes(),
		Logger:         logger,
	}, app.Handler())
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srv.Err():
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}
