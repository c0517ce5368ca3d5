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

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/cache"
	"github.com/Dosada05/bracket-hub/config"
	"github.com/Dosada05/bracket-hub/db"
	"github.com/Dosada05/bracket-hub/handlers"
	"github.com/Dosada05/bracket-hub/repositories"
	api "github.com/Dosada05/bracket-hub/routes"
	"github.com/Dosada05/bracket-hub/services"
	"github.com/Dosada05/bracket-hub/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const (
	dbConnectAttempts = 5
	dbConnectDelay    = 3 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, dbConnectAttempts, dbConnectDelay)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Seeding order cache: Redis when configured, otherwise in-memory.
	var seedingCache cache.SeedingCache
	if cfg.RedisURL != "" {
		seedingCache, err = cache.NewRedisSeedingCache(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, falling back to in-memory seeding cache", slog.Any("error", err))
			seedingCache = cache.NewMemorySeedingCache()
		} else {
			logger.Info("redis seeding cache initialized")
		}
	} else {
		seedingCache = cache.NewMemorySeedingCache()
		logger.Info("using in-memory seeding cache")
	}

	// Logo storage is optional; without credentials the upload endpoint
	// responds 503 instead of failing startup.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 credentials not configured, logo uploads disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	overrideRepo := repositories.NewPostgresOverrideRepository(dbConn)
	logger.Info("repositories initialized")

	notifier := services.NewHubNotifier(wsHub)
	competitionService := services.NewCompetitionService(competitionRepo)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	overrideService := services.NewOverrideService(competitionRepo, teamRepo, overrideRepo, notifier, logger)
	bracketService := services.NewBracketService(
		dbConn, // For transaction management across seeding and match writes
		competitionRepo,
		teamRepo,
		matchRepo,
		overrideRepo,
		seedingCache,
		notifier,
		logger,
	)
	logger.Info("services initialized")

	bracketHandler := handlers.NewBracketHandler(bracketService, overrideService)
	competitionHandler := handlers.NewCompetitionHandler(competitionService, teamService)
	teamHandler := handlers.NewTeamHandler(teamService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, competitionService, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		bracketHandler,
		competitionHandler,
		teamHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
