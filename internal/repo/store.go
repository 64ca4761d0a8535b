package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tourday/planner/migrations"
)

// StoreOptions selects and locates a KV backend.
type StoreOptions struct {
	Driver      string // memory, sqlite, postgres
	SQLitePath  string
	DatabaseURL string
}

// Store is an opened KV backend together with the handles needed to migrate
// and close it.
type Store struct {
	KV KV

	sqlDB   *sql.DB // nil for memory
	dialect goose.Dialect
	pool    *pgxpool.Pool
}

// OpenStore connects to the backend named by opts.Driver.
// Callers must Close the returned Store.
func OpenStore(ctx context.Context, opts StoreOptions) (*Store, error) {
	switch opts.Driver {
	case "memory":
		return &Store{KV: NewMemoryKV()}, nil

	case "sqlite":
		db, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("repo.OpenStore: %w", err)
		}
		return &Store{KV: NewSQLiteKV(db), sqlDB: db, dialect: goose.DialectSQLite3}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("repo.OpenStore: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("repo.OpenStore: ping: %w", err)
		}
		// goose needs database/sql; share the pool's connections.
		db := stdlib.OpenDBFromPool(pool)
		return &Store{KV: NewPostgresKV(pool), sqlDB: db, dialect: goose.DialectPostgres, pool: pool}, nil
	}
	return nil, fmt.Errorf("repo.OpenStore: unknown driver %q", opts.Driver)
}

// Migrate applies every pending migration. It is a no-op for the memory
// driver. The returned results describe the migrations that ran.
func (s *Store) Migrate(ctx context.Context) ([]*goose.MigrationResult, error) {
	if s.sqlDB == nil {
		return nil, nil
	}
	provider, err := goose.NewProvider(s.dialect, s.sqlDB, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("repo.Store.Migrate: create provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.Store.Migrate: %w", err)
	}
	return results, nil
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases database handles.
func (s *Store) Close() error {
	var err error
	if s.sqlDB != nil {
		err = s.sqlDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}
