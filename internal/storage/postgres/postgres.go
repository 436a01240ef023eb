package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shopping-cart/internal/config"

	_ "github.com/lib/pq"
)

// Store keeps every key as one row of kv_store.
type Store struct {
	DB     *sql.DB
	prefix string
}

func Open(ctx context.Context, cfg *config.Database) (*sql.DB, error) {

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func New(db *sql.DB, prefix string) *Store {
	return &Store{DB: db, prefix: prefix}
}

func (s *Store) Key(key string) string {
	return s.prefix + ":" + key
}

func (s *Store) EnsureSchema(ctx context.Context) error {

	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}

	return nil
}

func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {

	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string

	err := s.DB.QueryRowContext(ctx, query, s.Key(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("querying key %s: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) Write(ctx context.Context, key, value string) error {

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.DB.ExecContext(ctx, query, s.Key(key), value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {

	query := `DELETE FROM kv_store WHERE key = $1`

	if _, err := s.DB.ExecContext(ctx, query, s.Key(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
