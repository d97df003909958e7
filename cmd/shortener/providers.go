package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"shortlog/internal/config"
	"shortlog/internal/eventlog"
	"shortlog/internal/urlservice/database"
	httpdelivery "shortlog/internal/urlservice/delivery/http"
	"shortlog/internal/urlservice/repository/cache"
	"shortlog/internal/urlservice/repository/sqlite"
	"shortlog/internal/urlservice/usecase"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds what main needs after wiring.
type app struct {
	server *http.Server
}

var providerSet = wire.NewSet(
	wire.Bind(new(usecase.EventLogger), new(*eventlog.Logger)),
	wire.InterfaceValue(new(prometheus.Gatherer), prometheus.DefaultGatherer),
	provideDB,
	provideRedis,
	provideURLRepository,
	provideURLService,
	provideRateLimiter,
	httpdelivery.NewHandler,
	httpdelivery.NewRouter,
	provideServer,
	newApp,
)

func provideDB(cfg *config.Config, events usecase.EventLogger, logger *zap.Logger) (*sql.DB, func(), error) {
	dbEvent := func(level eventlog.Level, msg string) {
		events.Log(string(eventlog.StackBackend), string(level), string(eventlog.PackageDB), msg)
	}

	db, err := database.OpenDB(cfg.DatabasePath)
	if err != nil {
		dbEvent(eventlog.LevelFatal, "Failed to open database: "+err.Error())
		return nil, nil, err
	}

	version, err := database.RunMigrations(db, database.Migrations)
	if err != nil {
		db.Close()
		dbEvent(eventlog.LevelFatal, "Database migration failed: "+err.Error())
		return nil, nil, err
	}

	logger.Info("database initialized",
		zap.String("path", cfg.DatabasePath),
		zap.Uint("schema_version", version),
	)
	dbEvent(eventlog.LevelInfo, fmt.Sprintf("Database initialized at %s (schema version %d)", cfg.DatabasePath, version))

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// provideRedis returns a nil client when REDIS_ADDR is unset. An unreachable
// server is reported but not fatal; the cache degrades to the database.
func provideRedis(cfg *config.Config, events usecase.EventLogger, logger *zap.Logger) (*redis.Client, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, url cache disabled")
		return nil, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		events.Log(string(eventlog.StackBackend), string(eventlog.LevelWarn), string(eventlog.PackageCache),
			"Redis unreachable at startup: "+err.Error())
	}

	return rdb, func() { rdb.Close() }
}

func provideURLRepository(db *sql.DB, rdb *redis.Client, events usecase.EventLogger, logger *zap.Logger) usecase.URLRepository {
	return cache.NewCachedURLRepository(
		sqlite.NewURLRepository(db),
		cache.NewRedisURLCache(rdb),
		events,
		logger,
	)
}

func provideURLService(repo usecase.URLRepository, events usecase.EventLogger, logger *zap.Logger, cfg *config.Config) *usecase.URLService {
	return usecase.NewURLService(repo, events, logger, cfg.BaseURL)
}

func provideRateLimiter(cfg *config.Config, events usecase.EventLogger) (*httpdelivery.RateLimiter, func()) {
	rl := httpdelivery.NewRateLimiter(cfg.RateLimit, events)
	return rl, rl.Stop
}

func provideServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newApp(server *http.Server) *app {
	return &app{server: server}
}
