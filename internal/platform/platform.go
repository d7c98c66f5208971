// Package platform wires configuration to concrete storage and LLM backends.
package platform

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/config"
	"github.com/kezzyngotho/aura/internal/database"
	"github.com/kezzyngotho/aura/internal/kv"
	"github.com/kezzyngotho/aura/internal/llm"
)

const purgeInterval = time.Hour

// OpenStore picks the KV backend named by KV_DRIVER
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (kv.Store, func(), error) {
	var (
		db     *sql.DB
		driver string
		err    error
	)

	switch cfg.KVDriver {
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	case kv.DriverPostgres:
		db, err = database.NewPostgresConnection(cfg.DatabaseURL)
		driver = kv.DriverPostgres
	case kv.DriverSQLite:
		db, err = database.NewSQLiteConnection(cfg.SQLitePath)
		driver = kv.DriverSQLite
	default:
		return nil, nil, fmt.Errorf("unknown KV_DRIVER %q", cfg.KVDriver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := kv.NewSQLStore(db, driver)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("connected to database", zap.String("driver", driver))

	purgeCtx, cancel := context.WithCancel(ctx)
	go purgeExpired(purgeCtx, store, logger)

	return store, func() {
		cancel()
		db.Close()
	}, nil
}

// purgeExpired drops expired rows until ctx is cancelled
func purgeExpired(ctx context.Context, store *kv.SQLStore, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("failed to purge expired keys", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("purged expired keys", zap.Int64("count", n))
			}
		}
	}
}

// NewLLMClient builds the configured completion client wrapped in rate-limit retries
func NewLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	var client llm.Client
	switch cfg.Provider {
	case "http":
		client = llm.NewHTTPClient(llm.HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		})
	case "gemini":
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		client = gemini
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return llm.WithRetry(client, cfg.MaxRetries, cfg.RetryDelay), nil
}
