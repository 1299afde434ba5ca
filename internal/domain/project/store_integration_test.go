package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/report"
	"github.com/ganot/checkvault/internal/domain/template"
	"github.com/ganot/checkvault/internal/repository"
	"github.com/ganot/checkvault/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func newSQLiteService(t *testing.T) (*project.Service, *activity.Service) {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	activities := activity.NewService(sqlite.NewActivityRepository(db), nil)
	svc := project.NewService(sqlite.NewDocumentRepository(db), template.NewRegistry(), activities, nil)
	return svc, activities
}

func TestStore_SiteAScenario(t *testing.T) {
	ctx := context.Background()
	svc, activities := newSQLiteService(t)

	created, err := svc.Create(ctx, "Site A", "Marketing site", project.TypeWebDevelopment)
	require.NoError(t, err)
	require.Len(t, created.Categories, 8)
	for _, cat := range created.Categories {
		for _, item := range cat.Items {
			require.False(t, item.Checked)
			require.Empty(t, item.Comment)
		}
	}

	require.NoError(t, svc.ToggleItem(ctx, created.ID, "planning", "req1"))
	p, ok := svc.Get(created.ID)
	require.True(t, ok)
	planning, ok := p.Category("planning")
	require.True(t, ok)
	require.Equal(t, 20, planning.Progress())

	require.NoError(t, svc.SetItemComment(ctx, created.ID, "planning", "req1", "Missing timeline"))

	// Reloading from the backend sees the persisted state.
	reloaded := svc.FetchAll(ctx)
	require.Len(t, reloaded, 1)
	item, ok := reloaded[0].Find("planning", "req1")
	require.True(t, ok)
	require.True(t, item.Checked)
	require.Equal(t, "Missing timeline", item.Comment)

	out := report.Generate(reloaded[0], report.RiskFlags{"planning": true}, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.Contains(t, out, "Project Planning:\n- Requirements Gathering and Documentation\n  Finding: Missing timeline\n")

	entries, err := activities.GetRecentActivity(ctx, activity.ListActivityOptions{ProjectID: created.ID})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, activity.TypeItemCommented, entries[0].ActivityType)
	require.Equal(t, activity.DefaultActor, entries[0].Actor)
}

func TestStore_TemplatesAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSQLiteService(t)

	first, err := svc.Create(ctx, "First", "d", project.TypeSecurityAudit)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", "d", project.TypeSecurityAudit)
	require.NoError(t, err)

	cat := first.Categories[0]
	require.NoError(t, svc.ToggleItem(ctx, first.ID, cat.ID, cat.Items[0].ID))

	other, ok := svc.Get(second.ID)
	require.True(t, ok)
	require.False(t, other.Categories[0].Items[0].Checked)

	fresh, err := template.NewRegistry().For(project.TypeSecurityAudit)
	require.NoError(t, err)
	require.False(t, fresh[0].Items[0].Checked)
}

func TestStore_DeleteUnknownLeavesCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSQLiteService(t)

	created, err := svc.Create(ctx, "Site A", "d", project.TypeWebDevelopment)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "does-not-exist"), repository.ErrNotFound)
	require.Len(t, svc.Projects(), 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Empty(t, svc.Projects())
	require.Empty(t, svc.FetchAll(ctx))
}
