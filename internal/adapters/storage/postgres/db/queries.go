package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const createSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    namespace  TEXT        NOT NULL,
    key        TEXT        NOT NULL,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (namespace, key)
)`

func (q *Queries) CreateSchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, createSchema)
	return err
}

const getEntry = `
SELECT value FROM kv_entries
WHERE namespace = $1 AND key = $2`

type GetEntryParams struct {
	Namespace string
	Key       string
}

func (q *Queries) GetEntry(ctx context.Context, arg GetEntryParams) (string, error) {
	row := q.db.QueryRow(ctx, getEntry, arg.Namespace, arg.Key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const upsertEntry = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE
SET value = EXCLUDED.value, updated_at = now()`

type UpsertEntryParams struct {
	Namespace string
	Key       string
	Value     string
}

func (q *Queries) UpsertEntry(ctx context.Context, arg UpsertEntryParams) error {
	_, err := q.db.Exec(ctx, upsertEntry, arg.Namespace, arg.Key, arg.Value)
	return err
}
