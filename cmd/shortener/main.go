package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortlog/internal/config"
	"shortlog/internal/eventlog"

	"github.com/prometheus/client_golang/prometheus"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	events := eventlog.New(cfg.EventLogger(),
		eventlog.WithDiagnostics(logger),
		eventlog.WithRegisterer(prometheus.DefaultRegisterer),
	)
	cfgEvents := events.Scope(eventlog.StackBackend, eventlog.PackageConfig)
	cfgEvents.Info("Configuration loaded: env=" + cfg.EnvMode + " port=" + cfg.Port)
	if cfg.EventLog.Token == "" {
		cfgEvents.Warn("LOG_API_TOKEN is not set; events are sent without authorization")
	}

	application, cleanup, err := initApp(cfg, logger, events)
	if err != nil {
		events.Scope(eventlog.StackBackend, eventlog.PackageConfig).Fatal("Service initialization failed: " + err.Error())
		closeEvents(events, logger)
		logger.Fatal("failed to initialize service", zap.Error(err))
	}

	go func() {
		announceStart(cfg, logger, cfgEvents)
		if err := application.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	cleanup()
	closeEvents(events, logger)

	logger.Info("server stopped")
}

func announceStart(cfg *config.Config, logger *zap.Logger, events eventlog.Scoped) {
	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("rate_limit", cfg.RateLimit),
	)
	events.Info("Server started on port " + cfg.Port)
}

// closeEvents flushes queued events before exit.
func closeEvents(events *eventlog.Logger, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := events.Close(ctx); err != nil {
		logger.Warn("pending log events discarded on shutdown", zap.Error(err))
	}
}
