package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fintrack/fintrack-go/internal/config"
	"github.com/fintrack/fintrack-go/internal/handler"
	"github.com/fintrack/fintrack-go/internal/logger"
	"github.com/fintrack/fintrack-go/internal/repository"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout))

	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database initialisation failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	janitorStop := make(chan struct{})
	defer close(janitorStop)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(db, handler.Options{
			JWTSecret:      cfg.JWTSecret,
			JWTExpiry:      cfg.JWTExpiry,
			RateLimitRPS:   cfg.AuthRateLimitRPS,
			RateLimitBurst: cfg.AuthRateLimitBurst,
			Stop:           janitorStop,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
