package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/config"
	dbRedis "github.com/kailas-cloud/medspace/internal/db/redis"
	logpkg "github.com/kailas-cloud/medspace/internal/logger"
	"github.com/kailas-cloud/medspace/internal/metrics"
	budgetrepo "github.com/kailas-cloud/medspace/internal/repository/budget"
	contentrepo "github.com/kailas-cloud/medspace/internal/repository/content"
	chiTransport "github.com/kailas-cloud/medspace/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/medspace/internal/transport/openai"
	s3Transport "github.com/kailas-cloud/medspace/internal/transport/s3"
	assistantuc "github.com/kailas-cloud/medspace/internal/usecase/assistant"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
	mediauc "github.com/kailas-cloud/medspace/internal/usecase/media"
	searchuc "github.com/kailas-cloud/medspace/internal/usecase/search"
	usageuc "github.com/kailas-cloud/medspace/internal/usecase/usage"
	"github.com/kailas-cloud/medspace/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, version.Version)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting medspace API server",
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("assistant", cfg.Assistant.Enabled()),
		zap.Bool("media", cfg.Media.Enabled()),
	)

	// valkey and redis share the rueidis-backed store.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterHTTPMetrics()
	metrics.RegisterDomainMetrics()

	// Catalog
	catalogSvc := contentuc.New(contentrepo.New(store, cfg.Catalog.KeyPrefix), logger)
	if cfg.Catalog.SeedFile != "" {
		n, err := catalogSvc.Seed(ctx, cfg.Catalog.SeedFile)
		if err != nil {
			logger.Fatal("Failed to seed catalog", zap.String("path", cfg.Catalog.SeedFile), zap.Error(err))
		}
		logger.Info("Catalog ready", zap.Int("seeded", n))
	}

	// Assistant: explicit client, shared budget tracker.
	var (
		assistantSvc    *assistantuc.Service
		budgetReader    usageuc.BudgetReader
		providerChecker healthuc.ProviderChecker
	)
	if cfg.Assistant.Enabled() {
		client := openaiTransport.New(&openaiTransport.Config{
			APIKey:      cfg.Assistant.APIKey,
			BaseURL:     cfg.Assistant.BaseURL,
			Model:       cfg.Assistant.Model,
			TTSModel:    cfg.Assistant.TTSModel,
			Temperature: cfg.Assistant.Temperature,
			MaxTokens:   cfg.Assistant.MaxTokens,
			Logger:      logger,
		})
		providerChecker = client

		budget := buildBudget(ctx, cfg, store, logger)
		budgetReader = budget

		assistantSvc = assistantuc.New(
			searchuc.New(catalogSvc, "ai-assistant"), client, client, budget,
			assistantuc.Config{
				Model:        cfg.Assistant.Model,
				SystemPrompt: cfg.Assistant.SystemPrompt,
				Voice:        cfg.Assistant.Voice,
				Limit:        cfg.Search.AssistantLimit,
			},
			logger,
		)
		logger.Info("Assistant enabled",
			zap.String("model", cfg.Assistant.Model),
			zap.String("tts_model", cfg.Assistant.TTSModel),
		)
	}

	// Media: pass nil interfaces (not typed nil pointers) when disabled.
	var (
		bucket      mediauc.Bucket
		mediaPinger healthuc.Pinger
	)
	if cfg.Media.Enabled() {
		b, err := s3Transport.New(s3Transport.Config{
			Bucket:          cfg.Media.Bucket,
			Region:          cfg.Media.Region,
			Endpoint:        cfg.Media.Endpoint,
			AccessKeyID:     cfg.Media.AccessKeyID,
			SecretAccessKey: cfg.Media.SecretAccessKey,
			UsePathStyle:    cfg.Media.UsePathStyle,
		})
		if err != nil {
			logger.Fatal("Failed to create media bucket client", zap.Error(err))
		}
		bucket, mediaPinger = b, b
		logger.Info("Media enabled", zap.String("bucket", cfg.Media.Bucket))
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Search:      searchuc.New(catalogSvc, "ai-search"),
		SearchLimit: cfg.Search.DefaultLimit,
		Catalog:     catalogSvc,
		Assistant:   assistantSvc,
		Media:       mediauc.New(bucket, time.Duration(cfg.Media.URLExpiryMinutes)*time.Minute),
		Usage:       usageuc.New(budgetReader),
		Health:      healthuc.New(store, providerChecker, mediaPinger),
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildBudget creates the assistant token budget and attaches persistence.
func buildBudget(ctx context.Context, cfg config.Config, store *dbRedis.Store, logger *zap.Logger) *assistantuc.BudgetTracker {
	action := assistantuc.BudgetActionWarn
	if cfg.Assistant.Budget.Action == string(assistantuc.BudgetActionReject) {
		action = assistantuc.BudgetActionReject
	}
	budget := assistantuc.NewBudgetTracker(
		cfg.Catalog.KeyPrefix,
		cfg.Assistant.Budget.DailyTokenLimit,
		cfg.Assistant.Budget.MonthlyTokenLimit,
		action, logger,
	)
	return budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
}
