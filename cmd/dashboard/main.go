package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"bikeshare/internal/backend"
	"bikeshare/internal/cli"
	"bikeshare/internal/dataset"
	apphttp "bikeshare/internal/http"
	applog "bikeshare/internal/log"
	"bikeshare/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	source := cli.OpenSource(context.Background(), logger, backendCfg)

	loader := dataset.NewLoader(source.Source, logger).WithTimeout(cfg.FetchTimeout)
	dashboard := services.NewDashboardService(loader)

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, apphttp.Options{
		RequestTimeout: cfg.RequestTimeout,
		Ready:          loader.Loaded,
		Logger:         logger,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.RequestTimeout + 5*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := source.Close(); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	// Warm the dataset so the first page view does not pay for the load.
	// A failure here is not fatal: the next request retries.
	go func() {
		if _, err := loader.Load(ctx); err != nil {
			logger.Warn("Initial dataset load failed", applog.FieldError, err)
		}
	}()

	logger.Info("Starting bikeshare dashboard",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldSource, source.Source.Location())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
