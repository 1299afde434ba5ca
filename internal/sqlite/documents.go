package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ganot/checkvault/internal/repository"
	"github.com/google/uuid"
)

// DocumentRepository stores schemaless JSON documents grouped by collection.
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListAll returns every document in the collection in insertion order.
func (r *DocumentRepository) ListAll(ctx context.Context, collection string) ([]repository.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY seq ASC`, collection)
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
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(body), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return "", persistenceError("insert", collection, id, fmt.Errorf("duplicate id: %w", err))
		}
		return "", persistenceError("insert", collection, id, err)
	}
	return id, nil
}

// Replace overwrites the named top-level fields of one document, leaving the
// rest of the body untouched.
func (r *DocumentRepository) Replace(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if name == "" || strings.ContainsAny(name, `".[]$`) {
			return persistenceError("replace", collection, id, fmt.Errorf("field %q: %w", name, repository.ErrInvalidInput))
		}
		names = append(names, name)
	}
	slices.Sort(names)

	args := make([]any, 0, len(names)*2+3)
	setters := make([]string, 0, len(names))
	for _, name := range names {
		value, err := json.Marshal(fields[name])
		if err != nil {
			return persistenceError("replace", collection, id, fmt.Errorf("encoding field %s: %w", name, err))
		}
		setters = append(setters, "?, json(?)")
		args = append(args, `$."`+name+`"`, string(value))
	}
	args = append(args, time.Now().UTC(), collection, id)

	query := `UPDATE documents SET body = json_set(body, ` + strings.Join(setters, ", ") +
		`), updated_at = ? WHERE collection = ? AND id = ?`
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistenceError("replace", collection, id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return persistenceError("replace", collection, id, repository.ErrNotFound)
	}
	return nil
}

// Delete removes one document.
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return persistenceError("delete", collection, id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return persistenceError("delete", collection, id, repository.ErrNotFound)
	}
	return nil
}
