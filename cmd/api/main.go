package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"formulator-backend/internal/bootstrap"
	"formulator-backend/internal/shared/config"
	"formulator-backend/internal/shared/server"
	"formulator-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	cleanup := telemetry.Init(cfg.LogLevel)
	defer cleanup()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.L().Error("bootstrap failed", zap.Error(err))
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	// Writes must outlive the slowest gateway round trip.
	gatewayTimeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:         server.Addr(cfg.Port),
		Handler:      app.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: gatewayTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		telemetry.L().Info("Starting API server",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Env),
			zap.String("model", app.Gateway.Model()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.L().Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.L().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.L().Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	telemetry.L().Info("Server exited")
}
