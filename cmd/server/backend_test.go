package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ganot/checkvault/internal/config"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "checkvault.db")

	store, err := openBackend(ctx, config.DBConfig{Driver: "sqlite", Path: path}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(store.close)

	id, err := store.documents.Insert(ctx, project.Collection, []byte(`{"name":"x"}`))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, store.apiKeys.Add(ctx, "tok", "ops", "bootstrap"))
	owner, err := store.apiKeys.ResolveOwner(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "ops", owner)
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	_, err := openBackend(context.Background(), config.DBConfig{Driver: "mysql"}, slog.New(slog.DiscardHandler))
	require.ErrorContains(t, err, "unknown db driver")
}
