package cache

import (
	"context"
	"fmt"

	"blend-calendar-api/core/config"
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the shared redis client used for availability buckets
// and as the asynq broker.
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultRequestTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err, "addr", cfg.Addr)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}
