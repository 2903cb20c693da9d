package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/handler"
	"github.com/nikolay-ai/hackevent/internal/metrics"
	"github.com/nikolay-ai/hackevent/internal/repository/postgres"
	"github.com/nikolay-ai/hackevent/internal/repository/redis"
	"github.com/nikolay-ai/hackevent/internal/repository/sqlite"
	"github.com/nikolay-ai/hackevent/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		slog.Warn("failed to set GOMAXPROCS", "error", err)
	}

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, repo, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open registration store", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("registration store ready", "driver", cfg.DatabaseDriver)

	m := metrics.New()
	registrations := service.NewRegistrationService(repo,
		service.WithStoreTimeout(cfg.StoreTimeout),
		service.WithCaseInsensitiveEmail(cfg.EmailCaseInsensitive),
		service.WithObserver(m),
	)
	adminService := service.NewAdminService(cfg.AdminPasswordHash, cfg.JWTSecret)
	limiter := service.NewTokenBucket(cfg.RegisterRate, cfg.RegisterBurst)
	defer limiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Deps{
		Registrations:  registrations,
		Store:          db,
		Admin:          adminService,
		Limiter:        limiter,
		Metrics:        m,
		InvitationPath: cfg.InvitationPath,
		AssetsDir:      cfg.AssetsDir,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewServer(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore opens the backend selected by DATABASE_DRIVER.
func openStore(ctx context.Context, cfg config.Server) (domain.Database, domain.RegistrationRepository, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Registrations(), nil
	case config.DriverRedis:
		store, err := redis.New(ctx, cfg.RedisURL, redis.DefaultPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Registrations(), nil
	default:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Registrations(), nil
	}
}
