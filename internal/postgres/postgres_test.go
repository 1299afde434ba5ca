package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// newTestPool connects to the database named by CHECKVAULT_TEST_PG_DSN and
// skips the test when it is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("CHECKVAULT_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CHECKVAULT_TEST_PG_DSN not set")
	}
	pool, err := Connect(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	pool := newTestPool(t)
	repo := NewDocumentRepository(pool)
	ctx := context.Background()
	collection := "test-" + uuid.NewString()

	first, err := repo.Insert(ctx, collection, json.RawMessage(`{"name":"Site A","categories":[]}`))
	require.NoError(t, err)
	second, err := repo.Insert(ctx, collection, json.RawMessage(`{"name":"Site B"}`))
	require.NoError(t, err)

	require.NoError(t, repo.Replace(ctx, collection, first, map[string]any{
		"categories": []map[string]any{{"id": "planning"}},
	}))

	docs, err := repo.ListAll(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, first, docs[0].ID)
	require.JSONEq(t, `{"name":"Site A","categories":[{"id":"planning"}]}`, string(docs[0].Body))
	require.Equal(t, second, docs[1].ID)

	require.NoError(t, repo.Delete(ctx, collection, first))
	require.ErrorIs(t, repo.Delete(ctx, collection, first), repository.ErrNotFound)
	require.ErrorIs(t, repo.Replace(ctx, collection, first, map[string]any{"a": 1}), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, collection, second))
}

func TestActivityRepository_LogList(t *testing.T) {
	pool := newTestPool(t)
	repo := NewActivityRepository(pool)
	ctx := context.Background()
	projectID := uuid.NewString()

	entry := &activity.ActivityEntry{
		ProjectID:    projectID,
		CategoryID:   "planning",
		Actor:        "alice",
		ActivityType: activity.TypeItemToggled,
		Summary:      "toggled",
	}
	require.NoError(t, repo.Log(ctx, entry))
	require.NotZero(t, entry.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: projectID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "planning", entries[0].CategoryID)
	require.Empty(t, entries[0].ItemID)
}

func TestAPIKeyRepository_AddResolve(t *testing.T) {
	pool := newTestPool(t)
	repo := NewAPIKeyRepository(pool)
	ctx := context.Background()
	token := uuid.NewString()

	require.NoError(t, repo.Add(ctx, token, "alice", "test"))
	owner, err := repo.ResolveOwner(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", owner)

	_, err = repo.ResolveOwner(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
