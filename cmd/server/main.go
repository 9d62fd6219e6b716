package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/api"
	"github.com/finsight/revenue-analytics/internal/infrastructure/config"
	mongodb "github.com/finsight/revenue-analytics/internal/infrastructure/db/mongo"
	redisdb "github.com/finsight/revenue-analytics/internal/infrastructure/db/redis"
	sqlitedb "github.com/finsight/revenue-analytics/internal/infrastructure/db/sqlite"
	"github.com/finsight/revenue-analytics/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Relational store: users, companies, subscriptions, datasets.
	db, err := sqlitedb.Connect(sqlitedb.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite database")
	}
	log.Info().Str("path", cfg.SQLite.Path).Msg("sqlite ready")

	// Report store.
	mongoClient, reportsDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	// Answer cache is optional: a missing or unreachable Redis only disables
	// caching, it never blocks startup.
	rdb := connectRedis(ctx, cfg, log)

	e := api.NewRouter(db, reportsDB, rdb, cfg, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
}

func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis not configured, answer cache disabled")
		return nil
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, answer cache disabled")
		return nil
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	return rdb
}
