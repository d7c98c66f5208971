package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported SQL drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SQLStore keeps values in a single kv_store table. It works against
// PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
type SQLStore struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver, now: time.Now}
}

// Migrate creates the backing table when it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			revision   BIGINT NOT NULL,
			expires_at BIGINT
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

// Get decodes the value stored at key into dst.
func (s *SQLStore) Get(ctx context.Context, key string, dst any) (int64, error) {
	query := s.rebind(`SELECT value, revision, expires_at FROM kv_store WHERE key = ?`)

	var (
		value     string
		revision  int64
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value, &revision, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if expiresAt.Valid && expiresAt.Int64 <= s.now().UnixMilli() {
		return 0, ErrNotFound
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return revision, nil
}

// Put stores value at key.
func (s *SQLStore) Put(ctx context.Context, key string, value any, opts ...PutOption) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	o := applyPutOptions(opts)

	var expiresAt sql.NullInt64
	if o.ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(o.ttl).UnixMilli(), Valid: true}
	}

	var (
		query string
		args  []any
	)
	switch {
	case !o.conditional:
		query = `
			INSERT INTO kv_store (key, value, revision, expires_at)
			VALUES (?, ?, 1, ?)
			ON CONFLICT (key) DO UPDATE
			SET value = excluded.value,
			    revision = kv_store.revision + 1,
			    expires_at = excluded.expires_at
		`
		args = []any{key, string(data), expiresAt}
	case o.revision == 0:
		// An expired row counts as absent and is replaced.
		query = `
			INSERT INTO kv_store (key, value, revision, expires_at)
			VALUES (?, ?, 1, ?)
			ON CONFLICT (key) DO UPDATE
			SET value = excluded.value,
			    revision = kv_store.revision + 1,
			    expires_at = excluded.expires_at
			WHERE kv_store.expires_at IS NOT NULL AND kv_store.expires_at <= ?
		`
		args = []any{key, string(data), expiresAt, s.now().UnixMilli()}
	default:
		query = `
			UPDATE kv_store
			SET value = ?, revision = revision + 1, expires_at = ?
			WHERE key = ? AND revision = ?
		`
		args = []any{string(data), expiresAt, key, o.revision}
	}

	result, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}

	if o.conditional {
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrConflict
		}
	}

	return nil
}

// Delete removes key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.rebind(`DELETE FROM kv_store WHERE key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes rows whose TTL has passed and reports how many went.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	query := s.rebind(`DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at <= ?`)
	result, err := s.db.ExecContext(ctx, query, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired keys: %w", err)
	}
	return result.RowsAffected()
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
