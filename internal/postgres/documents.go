package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/checkvault/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository stores JSON documents as jsonb rows.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// ListAll returns every document in the collection in insertion order.
func (r *DocumentRepository) ListAll(ctx context.Context, collection string) ([]repository.Document, error) {
	const q = `
SELECT id, body::text
FROM documents
WHERE collection = $1
ORDER BY seq ASC
`
	rows, err := r.pool.Query(ctx, q, collection)
	if err != nil {
		return nil, persistenceError("list", collection, "", err)
	}
	defer rows.Close()

	docs := []repository.Document{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, persistenceError("list", collection, "", err)
		}
		docs = append(docs, repository.Document{ID: id, Body: json.RawMessage(body)})
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list", collection, "", err)
	}
	return docs, nil
}

// Insert stores body under a freshly generated ID and returns that ID.
func (r *DocumentRepository) Insert(ctx context.Context, collection string, body json.RawMessage) (string, error) {
	if !json.Valid(body) {
		return "", persistenceError("insert", collection, "", repository.ErrInvalidInput)
	}
	id := uuid.NewString()
	const q = `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`
	if _, err := r.pool.Exec(ctx, q, collection, id, string(body)); err != nil {
		return "", persistenceError("insert", collection, id, err)
	}
	return id, nil
}

// Replace merges the given top-level fields into one document; each named
// field is replaced wholesale.
func (r *DocumentRepository) Replace(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return persistenceError("replace", collection, id, fmt.Errorf("encoding fields: %w", err))
	}
	const q = `
UPDATE documents
SET body = body || $1::jsonb, updated_at = now()
WHERE collection = $2 AND id = $3
`
	tag, err := r.pool.Exec(ctx, q, string(patch), collection, id)
	return rowsAffected("replace", collection, id, tag, err)
}

// Delete removes one document.
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	return rowsAffected("delete", collection, id, tag, err)
}

func rowsAffected(op, collection, id string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return persistenceError(op, collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return persistenceError(op, collection, id, repository.ErrNotFound)
	}
	return nil
}

func persistenceError(op, collection, id string, err error) error {
	return &repository.PersistenceError{Op: op, Collection: collection, ID: id, Err: err}
}
