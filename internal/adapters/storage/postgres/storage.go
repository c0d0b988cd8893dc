package postgres

import (
	"context"
	"errors"
	"fmt"

	"guess-the-guild/internal/adapters/storage/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{
		pool: pool,
		q:    db.New(pool),
	}

	if err := store.q.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	value, err := s.q.GetEntry(ctx, db.GetEntryParams{
		Namespace: namespace,
		Key:       key,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, namespace, key, value string) error {
	err := s.q.UpsertEntry(ctx, db.UpsertEntryParams{
		Namespace: namespace,
		Key:       key,
		Value:     value,
	})
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}
