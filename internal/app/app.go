package app

import (
	"context"
	"errors"
	"fmt"
	"patternquiz/internal/cache"
	"patternquiz/internal/config"
	"patternquiz/internal/metrics"
	"patternquiz/internal/quiz"
	"patternquiz/internal/repository"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// App holds the shared infrastructure used by the server and the CLI
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Bank    *quiz.Bank
	Catalog *quiz.Catalog
	Engine  *quiz.Engine

	Mongo        *mongo.Client
	Redis        *redis.Client
	SessionRepo  repository.SessionRepo
	SessionCache cache.SessionCache
	StatsCache   cache.StatsCache
}

// NewEngine builds the scoring engine for the configured matcher and thresholds
func NewEngine(cfg *config.Config, bank *quiz.Bank, logger *zap.Logger, recorder quiz.FallbackRecorder) *quiz.Engine {
	opts := []quiz.ResolverOption{
		quiz.WithMatcher(cfg.Matcher()),
		quiz.WithLogger(logger),
	}
	if recorder != nil {
		opts = append(opts, quiz.WithFallbackRecorder(recorder))
	}
	return quiz.NewEngine(bank, quiz.NewResolver(bank, opts...), cfg.ResultThresholds())
}

// New connects to MongoDB and Redis and wires the stores and engine
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	bank, err := quiz.DefaultBank()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNewMetrics(registry)

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisURI))

	return &App{
		Config:       cfg,
		Logger:       logger,
		Registry:     registry,
		Metrics:      m,
		Bank:         bank,
		Catalog:      quiz.NewCatalog(),
		Engine:       NewEngine(cfg, bank, logger, m),
		Mongo:        mongoClient,
		Redis:        rdb,
		SessionRepo:  repository.NewSessionRepo(mongoClient.Database(cfg.MongoDB)),
		SessionCache: cache.NewSessionCache(rdb, cfg.SessionTTL),
		StatsCache:   cache.NewStatsCache(rdb),
	}, nil
}

// Close releases the database connections
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Redis.Close(), a.Mongo.Disconnect(ctx))
}
