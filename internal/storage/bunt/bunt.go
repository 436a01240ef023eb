package bunt

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// Store is an embedded, file-backed key-value store. Opening ":memory:" keeps
// everything in memory.
type Store struct {
	db *buntdb.DB
}

func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb at %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Read(_ context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})

	if errors.Is(err, buntdb.ErrNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s from buntdb: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) Write(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})

	if err != nil {
		return fmt.Errorf("failed to set key %s in buntdb: %w", key, err)
	}

	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})

	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("failed to delete key %s from buntdb: %w", key, err)
	}

	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return s.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Len()
		return err
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
