package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/filex"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dialect carries the per-database SQL for SQLStore.
type dialect struct {
	goose      string
	dir        string
	get        string
	has        string
	upsert     string
	del        string
	keys       string
	used       string
	usedExcept string
}

var sqliteDialect = dialect{
	goose:      "sqlite3",
	dir:        "sqlite",
	get:        `SELECT value FROM kv WHERE key = ?`,
	has:        `SELECT EXISTS(SELECT 1 FROM kv WHERE key = ?)`,
	upsert:     `INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	del:        `DELETE FROM kv WHERE key = ?`,
	keys:       `SELECT key FROM kv ORDER BY key`,
	used:       `SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv`,
	usedExcept: `SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv WHERE key <> ?`,
}

var postgresDialect = dialect{
	goose:      "postgres",
	dir:        "postgres",
	get:        `SELECT value FROM kv WHERE key = $1`,
	has:        `SELECT EXISTS(SELECT 1 FROM kv WHERE key = $1)`,
	upsert:     `INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	del:        `DELETE FROM kv WHERE key = $1`,
	keys:       `SELECT key FROM kv ORDER BY key`,
	used:       `SELECT COALESCE(SUM(octet_length(key) + octet_length(value)), 0) FROM kv`,
	usedExcept: `SELECT COALESCE(SUM(octet_length(key) + octet_length(value)), 0) FROM kv WHERE key <> $1`,
}

// SQLStore keeps entries in a single "kv" table.
type SQLStore struct {
	db       *sql.DB
	d        dialect
	capacity int64
}

// NewSQLiteStore wraps an already migrated SQLite database.
func NewSQLiteStore(db *sql.DB, capacity int64) *SQLStore {
	return &SQLStore{db: db, d: sqliteDialect, capacity: capacity}
}

// NewPostgresStore wraps an already migrated PostgreSQL database.
func NewPostgresStore(db *sql.DB, capacity int64) *SQLStore {
	return &SQLStore{db: db, d: postgresDialect, capacity: capacity}
}

// OpenSQLite opens (creating if needed) the SQLite file at dsn and applies
// migrations.
func OpenSQLite(ctx context.Context, dsn string, capacity int64) (*SQLStore, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// one connection: ":memory:" databases are per connection, and it
	// serialises the quota check with the write
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db, sqliteDialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return NewSQLiteStore(db, capacity), nil
}

// OpenPostgres connects through pgx and applies migrations.
func OpenPostgres(ctx context.Context, dsn string, capacity int64) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := runMigrations(ctx, db, postgresDialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return NewPostgresStore(db, capacity), nil
}

// runMigrations applies the embedded migrations for d.
func runMigrations(ctx context.Context, db *sql.DB, d dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, d.dir)
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) error {
	if s.capacity <= 0 {
		if _, err := s.db.ExecContext(ctx, s.d.upsert, key, value); err != nil {
			return fmt.Errorf("failed to set kv[%s]: %w", key, err)
		}
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var used int64
		if err := tx.QueryRowContext(ctx, s.d.usedExcept, key).Scan(&used); err != nil {
			return fmt.Errorf("failed to compute usage: %w", err)
		}
		if !fits(s.capacity, used, EntrySize(key, value)) {
			return ErrQuotaExceeded
		}
		if _, err := tx.ExecContext(ctx, s.d.upsert, key, value); err != nil {
			return fmt.Errorf("failed to set kv[%s]: %w", key, err)
		}
		return nil
	})
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.d.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Has(ctx context.Context, key string) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, s.d.has, key).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check kv[%s]: %w", key, err)
	}
	return ok, nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.d.keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

func (s *SQLStore) Usage(ctx context.Context) (Usage, error) {
	var used int64
	if err := s.db.QueryRowContext(ctx, s.d.used).Scan(&used); err != nil {
		return Usage{}, fmt.Errorf("failed to compute usage: %w", err)
	}
	return Usage{Used: used, Capacity: s.capacity}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
