package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/ubu-lite/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.KV interface at compile time.
var _ storage.KV = (*Store)(nil)

// Store provides Postgres-backed persistence for session slots.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS client_sessions (
			slot TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Get fetches a slot value.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := storage.CheckKeys(key); err != nil {
		return "", false, err
	}
	const query = `SELECT value FROM client_sessions WHERE slot = $1;`
	var value string
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set upserts a slot value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := storage.CheckKeys(key); err != nil {
		return err
	}
	const query = `
		INSERT INTO client_sessions (slot, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	_, err := s.pool.Exec(ctx, query, key, value)
	return err
}

// Delete removes all given slots in one statement.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if err := storage.CheckKeys(keys...); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	const query = `DELETE FROM client_sessions WHERE slot = ANY($1);`
	_, err := s.pool.Exec(ctx, query, keys)
	return err
}
