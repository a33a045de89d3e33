package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireline/api/internal/config"
	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/jobs"
	"github.com/hireline/api/internal/repository"
	"github.com/hireline/api/internal/service"
	"github.com/hireline/api/pkg/token"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize token issuer
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret: cfg.JWT.AccessSecret,
		Issuer:       cfg.JWT.Issuer,
		AccessTTL:    time.Duration(cfg.JWT.ExpirationMins) * time.Minute,
		RefreshTTL:   cfg.Token.RefreshTTL,
	})
	if err != nil {
		slog.Error("failed to initialize token issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the token service backing the sweeper
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		Issuer:    issuer,
		TokenRepo: repository.NewTokenRepository(db),
	})

	// Start background jobs
	sweeper := jobs.NewTokenSweeper(tokenService, cfg.Token.SweepInterval, cfg.Token.RevokedRetention)
	sweeper.Start()
	defer sweeper.Stop()

	slog.Info("auth core started",
		slog.String("env", cfg.Server.Env),
		slog.Duration("sweep_interval", cfg.Token.SweepInterval),
	)

	// Block until shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutting down", slog.String("signal", sig.String()))
}
