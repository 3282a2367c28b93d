package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"credit-risk/internal/config"
	apihttp "credit-risk/internal/http"
	"credit-risk/internal/metrics"
	"credit-risk/internal/model"
	"credit-risk/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	loaded, err := model.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("model load", zap.Error(err), zap.String("source", cfg.ModelSource))
	}
	logger.Info("model loaded",
		zap.String("name", loaded.Info.Name),
		zap.String("version", loaded.Info.Version),
		zap.String("checksum", loaded.Info.Checksum),
		zap.String("source", loaded.Info.Source),
	)

	encoder, err := service.NewEncoder()
	if err != nil {
		logger.Fatal("encoder init", zap.Error(err))
	}

	m := metrics.New()
	inferenceSvc := service.NewInferenceService(loaded.Classifier, encoder, logger, m)

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	var limiter service.RateLimiter = service.NewMemoryRateLimiter(window, cfg.RateLimitMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, window, cfg.RateLimitMax)
		}
		cancel()
	}

	var verifier *service.JWTVerifier
	if cfg.JWTSecret != "" {
		verifier = service.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	} else {
		logger.Warn("jwt secret not configured, risk endpoints are public")
	}

	riskHandler := apihttp.NewRiskHandler(logger, inferenceSvc, loaded.Info)
	router := apihttp.NewRouter(logger, riskHandler, apihttp.RouterDeps{
		Verifier: verifier,
		Limiter:  limiter,
		Metrics:  m,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
