package main

import (
	"context"
	"fmt"

	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/memstore"
	"github.com/hevilin/talentsite/internal/server"
	"github.com/hevilin/talentsite/internal/session"
	"go.uber.org/zap"
)

// loadSettings reads the config file when one is given, overlays the
// environment and fills in defaults. It does not validate.
func loadSettings(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// storeCloser is satisfied by both store implementations.
type storeCloser interface {
	server.Store
	Close()
}

// openStore connects to Postgres, or returns the seeded in-memory store in
// demo mode.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storeCloser, error) {
	if cfg.Demo {
		logger.Warn("demo mode: using the in-memory store, nothing is persisted")
		return memstore.NewDemo(), nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return database, nil
}

// connectDB is openStore without the demo fallback, for the commands that
// only make sense against a real database.
func connectDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or 'database_url' config is required")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// openRevoker returns the Redis revocation store when an address is
// configured, otherwise an in-process one. The close func is never nil.
func openRevoker(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Revoker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("session revocation kept in memory")
		return session.NewMemory(), func() {}, nil
	}
	r, err := session.NewRedis(ctx, session.RedisConfig{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("session revocation backed by redis", zap.String("addr", cfg.RedisAddr))
	return r, func() { _ = r.Close() }, nil
}

// openPublisher dials RabbitMQ when a URL is configured; events are dropped
// otherwise.
func openPublisher(cfg config.Config, logger *zap.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.Nop{}, nil
	}
	p, err := events.DialRabbit(cfg.AMQPURL, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing domain events to rabbitmq")
	return p, nil
}
