package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MySQLStore menyimpan draft pada tabel form_drafts.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{DB: db}
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, "SELECT payload FROM form_drafts WHERE draft_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gagal membaca draft: %w", err)
	}
	return payload, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO form_drafts (draft_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`
	if _, err := s.DB.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("gagal menyimpan draft: %w", err)
	}
	return nil
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM form_drafts WHERE draft_key = ?", key); err != nil {
		return fmt.Errorf("gagal menghapus draft: %w", err)
	}
	return nil
}
