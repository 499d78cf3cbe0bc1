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

	"go.uber.org/zap"

	"github.com/translate/ptlsearch/internal/config"
	dbRedis "github.com/translate/ptlsearch/internal/db/redis"
	logpkg "github.com/translate/ptlsearch/internal/logger"
	"github.com/translate/ptlsearch/internal/metrics"
	"github.com/translate/ptlsearch/internal/repository/popular"
	chiTransport "github.com/translate/ptlsearch/internal/transport/chi"
	healthuc "github.com/translate/ptlsearch/internal/usecase/health"
	searchuc "github.com/translate/ptlsearch/internal/usecase/search"
	"github.com/translate/ptlsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	table, err := cfg.Search.Table()
	if err != nil {
		logger.Fatal("Invalid search environments", zap.Error(err))
	}

	logger.Info("Starting ptlsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("environments", table.Names()),
		zap.String("default_environment", table.Default()),
		zap.Bool("popular_enabled", cfg.Database.Enabled()),
	)

	metrics.RegisterQueryMetrics()

	// Pass nil interfaces (not typed nil pointers!) when no database is configured.
	var (
		popularStore searchuc.PopularStore
		pinger       healthuc.DBPinger
	)
	if cfg.Database.Enabled() {
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

		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), timeout); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))

		ttl := time.Duration(cfg.Search.Popular.TTLDays) * 24 * time.Hour
		popularStore = popular.New(store, cfg.Search.Popular.KeyPrefix, ttl)
		pinger = store
	}

	searchSvc := searchuc.New(table, popularStore)
	healthSvc := healthuc.New(pinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, metrics.Middleware())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
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
