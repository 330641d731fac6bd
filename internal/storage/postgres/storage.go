package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rryowa/bookstore/internal/storage"
)

// Storage is a client storage backend on the client_storage table, one row
// per (namespace, key).
type Storage struct {
	db        storage.DBTX
	namespace string
}

func NewStorage(db storage.DBTX, namespace string) *Storage {
	return &Storage{db: db, namespace: namespace}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`
	err := s.db.QueryRowContext(ctx, query, s.namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO client_storage (namespace, key, value, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, s.namespace, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM client_storage WHERE namespace = $1 AND key = $2`
	if _, err := s.db.ExecContext(ctx, query, s.namespace, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
