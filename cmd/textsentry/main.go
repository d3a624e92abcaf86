package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/textsentry/textsentry/pkg/analysis/pipeline"
	"github.com/textsentry/textsentry/pkg/config"
	handlers "github.com/textsentry/textsentry/pkg/handlers/http"
	"github.com/textsentry/textsentry/pkg/infra/cache"
	"github.com/textsentry/textsentry/pkg/infra/classifier"
	"github.com/textsentry/textsentry/pkg/infra/httpx"
	infraLogger "github.com/textsentry/textsentry/pkg/infra/logger"
	"github.com/textsentry/textsentry/pkg/server"
	"github.com/textsentry/textsentry/pkg/server/router"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.WithError(err).Warn("config file not loaded, falling back to defaults and environment")
	}
	cfg := config.GetConfig()

	var scorer pipeline.Classifier
	if cfg.Classifier.Enabled {
		breakerCooldown := time.Duration(cfg.Classifier.BreakerCooldownSec) * time.Second
		if breakerCooldown <= 0 {
			breakerCooldown = 30 * time.Second
		}
		maxFailures := cfg.Classifier.BreakerMaxFailures
		if maxFailures == 0 {
			maxFailures = 5
		}
		breaker := httpx.NewCircuitBreaker("base_classifier", breakerCooldown, maxFailures)
		scorer = classifier.NewClient(nil, logger, breaker, classifier.Config{
			BaseURL:    cfg.Classifier.BaseURL,
			Token:      cfg.Classifier.Token,
			Thresholds: cfg.Classifier.Thresholds,
		})
	} else {
		logger.Info("base classifier disabled, scoring from static stages only")
	}

	p := pipeline.New(scorer, logger, pipeline.Config{
		Threshold:         cfg.Pipeline.Threshold,
		StageTimeout:      time.Duration(cfg.Pipeline.StageTimeoutMs) * time.Millisecond,
		ClassifierTimeout: time.Duration(cfg.Classifier.TimeoutMs) * time.Millisecond,
		Weights: pipeline.Weights{
			Base:          cfg.Pipeline.Weights.Base,
			Contextual:    cfg.Pipeline.Weights.Contextual,
			Sarcasm:       cfg.Pipeline.Weights.Sarcasm,
			Normalization: cfg.Pipeline.Weights.Normalization,
		},
	})

	var resultCache cache.Client
	if cfg.Redis.Enabled {
		c, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("result cache unavailable, continuing without it")
		} else {
			resultCache = c
			defer resultCache.Close()
		}
	}

	transport := handlers.HandlerTransport{
		DetectHandler:         handlers.NewDetectHandler(logger, p, resultCache, cfg.Pipeline.Threshold),
		NormalizeHandler:      handlers.NewNormalizeHandler(logger, p),
		DetectSarcasmHandler:  handlers.NewDetectSarcasmHandler(logger, p),
		AnalyzeContextHandler: handlers.NewAnalyzeContextHandler(logger, p),
		HealthHandler:         handlers.NewHealthHandler(logger, p),
		GetVersionHandler:     handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewAPIServer(cfg, logger).
		WithRouters(router.NewAPIRouter(transport))

	go func() {
		if err := srv.Run(); err != nil {
			logger.WithError(err).Fatal("api server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}
