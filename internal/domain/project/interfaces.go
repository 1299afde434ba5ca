package project

import (
	"context"
	"encoding/json"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/repository"
)

// DocumentStore is the remote persistence the Store mirrors.
type DocumentStore interface {
	ListAll(ctx context.Context, collection string) ([]repository.Document, error)
	Insert(ctx context.Context, collection string, body json.RawMessage) (string, error)
	Replace(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// TemplateSource returns a fresh copy of the checklist template for a type.
type TemplateSource interface {
	For(t Type) ([]Category, error)
}

// ActivityRecorder receives an entry after each successful mutation.
type ActivityRecorder interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
