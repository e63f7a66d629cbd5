package kvstore

import (
	"context"
	"errors"
	"log/slog"

	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectEntry = `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`
	upsertEntry = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteEntry = `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`
)

// Postgres stores entries in the kv_entries table, one row per (device, key).
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger}
}

func (p *Postgres) Scope(deviceID string) shared.KVStore {
	return &postgresScope{p: p, ns: namespace(deviceID)}
}

type postgresScope struct {
	p  *Postgres
	ns string
}

func (s *postgresScope) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.p.pool.QueryRow(ctx, selectEntry, s.ns, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrKeyNotFound
		}
		return nil, infra.WrapErr(s.p.logger, infra.KindStoreFailure, "failed to read kv entry", err)
	}
	return value, nil
}

func (s *postgresScope) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.p.pool.Exec(ctx, upsertEntry, s.ns, key, value); err != nil {
		return infra.WrapErr(s.p.logger, infra.KindStoreFailure, "failed to write kv entry", err)
	}
	return nil
}

func (s *postgresScope) Remove(ctx context.Context, key string) error {
	if _, err := s.p.pool.Exec(ctx, deleteEntry, s.ns, key); err != nil {
		return infra.WrapErr(s.p.logger, infra.KindStoreFailure, "failed to delete kv entry", err)
	}
	return nil
}
