package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"academy-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.WriteTimeout*5)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis connection", "error", err)
			}
			return nil
		},
	})

	logger.Info("redis storage ready", "addr", cfg.Redis.Addr)
	return rdb, nil
}
