// Package store opens the configured kv.Store backend.
package store

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/devkit/internal/config"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/devkit/internal/store/redis"
	"github.com/MrSnakeDoc/devkit/internal/store/sqlite"
)

// Open connects to the backend named by cfg.StoreBackend. Every backend
// is namespaced by cfg.KeyPrefix the same way.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (kv.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return kv.WithPrefix(memory.New(), cfg.KeyPrefix), nil

	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite store opened", logger.String("path", cfg.SQLitePath))
		return kv.WithPrefix(s, cfg.KeyPrefix), nil

	case config.StoreRedis:
		s, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return kv.WithPrefix(s, cfg.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
