package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgKV stores blobs in the kv_entries table.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KV {
	return &pgKV{db: db}
}

func (r *pgKV) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.PostgresKV.Get: %w", err)
	}
	return value, true, nil
}

func (r *pgKV) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.PostgresKV.Set: %w", err)
	}
	return nil
}

func (r *pgKV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.PostgresKV.Delete: %w", err)
	}
	return nil
}

// Keys lists stored keys with the given prefix, ordered by key.
func (r *pgKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT key FROM kv_entries WHERE starts_with(key, @prefix) ORDER BY key`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresKV.Keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresKV.Keys: rows: %w", err)
	}
	return keys, nil
}
