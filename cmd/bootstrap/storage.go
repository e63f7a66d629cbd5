package bootstrap

import (
	"fmt"
	"log/slog"

	"academy-booking/internal/infra/kvstore"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewKVScoper,
	),
)

// NewKVScoper opens the storage driver selected by STORAGE_DRIVER.
func NewKVScoper(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.KVScoper, error) {
	switch cfg.Storage.Driver {
	case "memory", "":
		logger.Warn("using in-memory storage: drafts do not survive a restart")
		return kvstore.NewMemory(), nil
	case "postgres":
		pool, err := NewDB(lc, cfg, logger)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgres(pool, logger), nil
	case "redis":
		rdb, err := NewRedis(lc, cfg, logger)
		if err != nil {
			return nil, err
		}
		return kvstore.NewRedis(rdb, cfg.Redis.KeyPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}
