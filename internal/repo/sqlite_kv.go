package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqlDB is satisfied by *sql.DB and *sql.Tx.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens (creating if needed) the SQLite database at path with WAL
// journaling and a busy timeout, so the API server and the CLI can share it.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create dir: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=synchronous(normal)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

type sqliteKV struct {
	db sqlDB
}

// NewSQLiteKV constructs a KV over the kv_entries table of a SQLite database.
// Pass *sql.DB in production or a *sql.Tx in tests.
func NewSQLiteKV(db sqlDB) KV {
	return &sqliteKV{db: db}
}

func (r *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.SQLiteKV.Get: %w", err)
	}
	return value, true, nil
}

func (r *sqliteKV) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("repo.SQLiteKV.Set: %w", err)
	}
	return nil
}

func (r *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteKV.Delete: %w", err)
	}
	return nil
}

// Keys lists stored keys with the given prefix, ordered by key.
func (r *sqliteKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT key FROM kv_entries WHERE substr(key, 1, ?) = ? ORDER BY key`

	rows, err := r.db.QueryContext(ctx, q, utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteKV.Keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("repo.SQLiteKV.Keys: scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SQLiteKV.Keys: rows: %w", err)
	}
	return keys, nil
}
