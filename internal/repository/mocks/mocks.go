package mocks

import (
	"context"
	"encoding/json"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/repository"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for project.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) ListAll(ctx context.Context, collection string) ([]repository.Document, error) {
	args := m.Called(ctx, collection)
	if docs, ok := args.Get(0).([]repository.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentStore) Insert(ctx context.Context, collection string, body json.RawMessage) (string, error) {
	args := m.Called(ctx, collection, body)
	return args.String(0), args.Error(1)
}

func (m *DocumentStore) Replace(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

// TemplateSource is a mock for project.TemplateSource.
type TemplateSource struct {
	mock.Mock
}

func (m *TemplateSource) For(t project.Type) ([]project.Category, error) {
	args := m.Called(t)
	if cats, ok := args.Get(0).([]project.Category); ok {
		return cats, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRecorder is a mock for project.ActivityRecorder.
type ActivityRecorder struct {
	mock.Mock
}

func (m *ActivityRecorder) LogActivity(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
