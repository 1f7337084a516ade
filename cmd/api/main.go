package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mancarijo/config"
	v1 "mancarijo/internal/delivery/http/v1"
	"mancarijo/internal/domain"
	"mancarijo/internal/repository/memory"
	"mancarijo/internal/repository/postgres"
	"mancarijo/internal/repository/remote"
	"mancarijo/internal/repository/session"
	"mancarijo/internal/usecase"
	"mancarijo/pkg/database"
	"mancarijo/pkg/logger"
	"mancarijo/pkg/metrics"
	"mancarijo/pkg/redis"
	"mancarijo/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title           MancariJo API
// @version         1.0
// @description     Job board backend-for-frontend over the MancariJo REST API.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting MancariJo backend", "port", cfg.Port, "api", cfg.APIBaseURL)

	ctx := context.Background()

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	checks := map[string]usecase.HealthCheck{}

	// 4. Remote API repositories
	client := remote.NewClient(cfg.APIBaseURL, cfg.APITimeout, m)
	jobRepo := remote.NewJobRepository(client)
	userRepo := remote.NewUserRepository(client)
	prefRepo := remote.NewPreferenceRepository(client)
	authRepo := remote.NewAuthRepository(client)
	checks["api"] = client.Ping

	// 5. Session tiers
	var durable domain.SessionTier
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, remembered sessions will not survive a restart", "error", err)
		durable = session.NewMemoryTier(string(domain.PersistenceDurable))
	} else {
		durable = session.NewRedisTier(redis.Client())
		checks["redis"] = redis.HealthCheck
		defer redis.Close()
	}
	ephemeral := session.NewMemoryTier(string(domain.PersistenceEphemeral))

	// 6. Transition journal
	var journal domain.JournalRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.EnsureJournalSchema(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to prepare journal schema", "error", err)
			os.Exit(1)
		}
		journal = postgres.NewJournalRepository(dbPool)
		checks["database"] = dbPool.Ping
	} else {
		journal = memory.NewJournalRepository()
	}

	// 7. Profile picture storage
	var pictures domain.PictureStore = storage.NewDataURLStore()
	if cfg.S3.Enabled() {
		s3Client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			logger.Log.Error("Failed to configure S3 client", "error", err)
			os.Exit(1)
		}
		pictures = storage.NewS3Store(s3Client, cfg.S3)
		logger.Log.Info("Profile pictures stored in S3", "provider", cfg.S3.Provider, "bucket", cfg.S3.Bucket)
	}

	// 8. Setup UseCases
	sessionUC := usecase.NewSessionUsecase(ephemeral, durable, m)
	authUC := usecase.NewAuthUsecase(authRepo, sessionUC)
	preferenceUC := usecase.NewPreferenceUsecase(prefRepo, userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo, prefRepo, preferenceUC)
	applicationUC := usecase.NewApplicationUsecase(jobRepo, userRepo, journal, m)
	notificationUC := usecase.NewNotificationUsecase(jobRepo)
	profileUC := usecase.NewProfileUsecase(userRepo, pictures, sessionUC, cfg.ProfilePictureMaxDimension)
	testimonyUC := usecase.NewTestimonyUsecase(userRepo)
	healthUC := usecase.NewHealthUsecase(checks)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		SessionUC:      sessionUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		NotificationUC: notificationUC,
		PreferenceUC:   preferenceUC,
		ProfileUC:      profileUC,
		TestimonyUC:    testimonyUC,
		HealthUC:       healthUC,
		Metrics:        m,
		Gatherer:       registry,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
