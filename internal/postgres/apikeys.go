package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/checkvault/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// APIKeyRepository stores hashed bearer tokens in PostgreSQL.
type APIKeyRepository struct {
	pool *pgxpool.Pool
}

// NewAPIKeyRepository creates a new APIKeyRepository.
func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

// Add stores the hash of token for owner. Adding a known token again is a no-op.
func (r *APIKeyRepository) Add(ctx context.Context, token, owner, description string) error {
	if token == "" || owner == "" {
		return repository.ErrInvalidInput
	}
	const q = `
INSERT INTO api_keys (key_hash, owner, description)
VALUES ($1, $2, $3)
ON CONFLICT (key_hash) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, repository.HashToken(token), owner, description); err != nil {
		return fmt.Errorf("add api key: %w", err)
	}
	return nil
}

// ResolveOwner returns the owner of token and stamps its last use.
func (r *APIKeyRepository) ResolveOwner(ctx context.Context, token string) (string, error) {
	const q = `UPDATE api_keys SET last_used = now() WHERE key_hash = $1 RETURNING owner`
	var owner string
	err := r.pool.QueryRow(ctx, q, repository.HashToken(token)).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", err)
	}
	return owner, nil
}
