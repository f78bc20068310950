package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mu-waterwear/db"
)

// KVRepository persists key-value pairs in the kv_store table. It backs
// the cart storage layer; all carts in the store share one table, one row
// per key, last writer wins.
type KVRepository struct{}

// NewKVRepository creates a new KVRepository
func NewKVRepository() *KVRepository {
	return &KVRepository{}
}

// Ensure KVRepository implements KVStore
var _ KVStore = (*KVRepository)(nil)

// GetItem reads the value stored under key. A missing key is not an error.
func (r *KVRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := db.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, true, nil
}

// SetItem writes value under key, overwriting any previous value
func (r *KVRepository) SetItem(ctx context.Context, key string, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := db.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Deleting a missing key is a no-op, not an error.
func (r *KVRepository) RemoveItem(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`

	if _, err := db.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
