package kvstore

import (
	"context"
	"errors"
	"log/slog"

	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries as plain string keys "<prefix>:<device>:<key>".
type Redis struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedis(client *redis.Client, prefix string, logger *slog.Logger) *Redis {
	return &Redis{client: client, prefix: prefix, logger: logger}
}

func (r *Redis) Scope(deviceID string) shared.KVStore {
	ns := namespace(deviceID)
	if r.prefix != "" {
		ns = r.prefix + ":" + ns
	}
	return &redisScope{r: r, ns: ns}
}

type redisScope struct {
	r  *Redis
	ns string
}

func (s *redisScope) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.r.client.Get(ctx, s.ns+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrKeyNotFound
		}
		return nil, infra.WrapErr(s.r.logger, infra.KindStoreFailure, "failed to read redis key", err)
	}
	return value, nil
}

func (s *redisScope) Set(ctx context.Context, key string, value []byte) error {
	if err := s.r.client.Set(ctx, s.ns+key, value, 0).Err(); err != nil {
		return infra.WrapErr(s.r.logger, infra.KindStoreFailure, "failed to write redis key", err)
	}
	return nil
}

func (s *redisScope) Remove(ctx context.Context, key string) error {
	if err := s.r.client.Del(ctx, s.ns+key).Err(); err != nil {
		return infra.WrapErr(s.r.logger, infra.KindStoreFailure, "failed to delete redis key", err)
	}
	return nil
}
