package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/checkvault/internal/repository"
)

// APIKeyRepository stores hashed bearer tokens and the owner each one
// authenticates as.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Add stores the SHA-256 hash of token for owner. Adding a known token again
// is a no-op.
func (r *APIKeyRepository) Add(ctx context.Context, token, owner, description string) error {
	if token == "" || owner == "" {
		return repository.ErrInvalidInput
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, owner, description, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key_hash) DO NOTHING`,
		repository.HashToken(token), owner, description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add api key: %w", err)
	}
	return nil
}

// ResolveOwner returns the owner of token and stamps its last use.
func (r *APIKeyRepository) ResolveOwner(ctx context.Context, token string) (string, error) {
	hash := repository.HashToken(token)
	var owner string
	err := r.db.QueryRowContext(ctx, `SELECT owner FROM api_keys WHERE key_hash = ?`, hash).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to stamp api key: %w", err)
	}
	return owner, nil
}
