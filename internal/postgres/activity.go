package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository implements activity.Repository for PostgreSQL.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Log inserts a new activity entry.
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	const q = `
INSERT INTO activity_log (project_id, category_id, item_id, actor, activity_type, summary, created_at)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7)
RETURNING id
`
	err := r.pool.QueryRow(ctx, q,
		entry.ProjectID, entry.CategoryID, entry.ItemID, entry.Actor,
		string(entry.ActivityType), entry.Summary, createdAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	entry.CreatedAt = createdAt
	return nil
}

// List returns activity entries matching the given filters, newest first.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	q := `
SELECT id, project_id, COALESCE(category_id, ''), COALESCE(item_id, ''), actor, activity_type, summary, created_at
FROM activity_log
`
	var args []any
	var conditions []string
	if opts.ProjectID != "" {
		args = append(args, opts.ProjectID)
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if opts.ActivityType != nil {
		args = append(args, string(*opts.ActivityType))
		conditions = append(conditions, fmt.Sprintf("activity_type = $%d", len(args)))
	}
	if len(conditions) > 0 {
		q += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	q += "ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var e activity.ActivityEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.CategoryID, &e.ItemID, &e.Actor, &kind, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.ActivityType = activity.ActivityType(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}
