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

	"github.com/NexusOfThings/registration-system/config"
	"github.com/NexusOfThings/registration-system/db"
	"github.com/NexusOfThings/registration-system/handlers"
	"github.com/NexusOfThings/registration-system/live"
	"github.com/NexusOfThings/registration-system/repositories"
	api "github.com/NexusOfThings/registration-system/routes"
	"github.com/NexusOfThings/registration-system/services"
	"github.com/NexusOfThings/registration-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
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

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema ensured")

	// The uploader is optional: without R2 credentials the app still runs,
	// and IdeaArena registrations fail with a storage-not-configured error.
	var uploader storage.FileUploader
	if cfg.StorageConfigured() {
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
		logger.Warn("blob-store credentials missing or placeholders; IdeaArena uploads disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("registration feed hub started")

	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	coordinatorRepo := repositories.NewPostgresCoordinatorRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	logger.Info("repositories initialized")

	codeGenerator := services.NewTeamCodeGenerator(participantRepo)
	registrationService := services.NewRegistrationService(
		participantRepo,
		codeGenerator,
		uploader,
		cfg.StorageConfigured(),
		logger,
	)
	eventService := services.NewEventService(eventRepo, coordinatorRepo, participantRepo)
	adminService := services.NewAdminService(
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
		[]byte(cfg.JWTSecretKey),
		eventRepo,
		coordinatorRepo,
	)
	logger.Info("services initialized")

	pagesHandler := handlers.NewPagesHandler(eventService, registrationService)
	eventHandler := handlers.NewEventHandler(eventService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, eventService, wsHub)
	adminHandler := handlers.NewAdminHandler(adminService, registrationService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	healthHandler := handlers.NewHealthHandler(dbConn)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		pagesHandler,
		eventHandler,
		registrationHandler,
		adminHandler,
		webSocketHandler,
		healthHandler,
		[]byte(cfg.JWTSecretKey),
		cfg.CORSAllowedOrigins,
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
		}
		logger.Info("server stopped gracefully")
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
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
