package project

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Service is the project store: a local cache of every known project kept in
// sync with a remote DocumentStore. The cache is only changed after the
// corresponding remote call succeeds.
//
// Mutations of the same project are sequenced. A FetchAll that resolves while
// a mutation's write is still pending may replace the cache underneath it; the
// mutation then merges into whatever cache exists when its write returns.
type Service struct {
	store     DocumentStore
	templates TemplateSource
	activity  ActivityRecorder
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	projects []Project

	loading atomic.Bool
	fetches singleflight.Group

	locksMu sync.Mutex
	locks   map[string]*projectLock
}

// projectLock sequences mutations of one project. refs counts holders and
// waiters; the entry leaves the map when it drops to zero.
type projectLock struct {
	sem  *semaphore.Weighted
	refs int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new project store with an empty cache. recorder may be nil.
func NewService(store DocumentStore, templates TemplateSource, recorder ActivityRecorder, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		store:     store,
		templates: templates,
		activity:  recorder,
		logger:    logger,
		now:       time.Now,
		locks:     make(map[string]*projectLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether a FetchAll is in flight.
func (s *Service) Loading() bool {
	return s.loading.Load()
}

// FetchAll replaces the cache with every persisted project and returns a
// snapshot of the cache. Failures are logged and swallowed, leaving the cache
// as it was. Concurrent calls share a single backend listing, which runs
// detached from the cancellation of whichever caller started it.
func (s *Service) FetchAll(ctx context.Context) []Project {
	listCtx := context.WithoutCancel(ctx)
	_, _, _ = s.fetches.Do("all", func() (any, error) {
		s.loading.Store(true)
		defer s.loading.Store(false)

		docs, err := s.store.ListAll(listCtx, Collection)
		if err != nil {
			s.logger.Error("fetching projects", "error", err)
			return nil, err
		}

		projects := make([]Project, 0, len(docs))
		for _, doc := range docs {
			p, err := decodeProject(doc)
			if err != nil {
				s.logger.Warn("skipping malformed project document", "project_id", doc.ID, "error", err)
				continue
			}
			projects = append(projects, p)
		}

		s.mu.Lock()
		s.projects = projects
		s.mu.Unlock()
		return nil, nil
	})
	return s.Projects()
}

// Projects returns a deep copy of the cache in cache order.
func (s *Service) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Get returns a deep copy of the cached project with the given ID.
func (s *Service) Get(id string) (Project, bool) {
	p, ok := s.cached(id)
	if !ok {
		return Project{}, false
	}
	return p.Clone(), true
}

// Create copies the template for t into a new project, persists it and
// appends it to the cache. Name and description are stored as given.
func (s *Service) Create(ctx context.Context, name, description string, t Type) (*Project, error) {
	categories, err := s.templates.For(t)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	p := Project{
		Name:        name,
		Description: description,
		Type:        t,
		CreatedAt:   s.now().UTC(),
		Categories:  categories,
	}
	if err := Validate(p); err != nil {
		return nil, err
	}

	body, err := encodeProject(p)
	if err != nil {
		return nil, err
	}
	id, err := s.store.Insert(ctx, Collection, body)
	if err != nil {
		s.logger.Error("creating project", "name", name, "type", t, "error", err)
		return nil, fmt.Errorf("creating project: %w", err)
	}
	p.ID = id

	s.mu.Lock()
	s.projects = append(s.projects, p)
	s.mu.Unlock()

	s.record(ctx, &activity.ActivityEntry{
		ProjectID:    id,
		ActivityType: activity.TypeProjectCreated,
		Summary:      fmt.Sprintf("created %s project %q", t.Label(), name),
	})

	created := p.Clone()
	return &created, nil
}

// Delete removes the persisted project and, only on success, drops it from
// the cache.
func (s *Service) Delete(ctx context.Context, id string) error {
	release, err := s.lockProject(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	if err := s.store.Delete(ctx, Collection, id); err != nil {
		s.logger.Error("deleting project", "project_id", id, "error", err)
		return fmt.Errorf("deleting project: %w", err)
	}

	s.mu.Lock()
	kept := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.mu.Unlock()

	s.record(ctx, &activity.ActivityEntry{
		ProjectID:    id,
		ActivityType: activity.TypeProjectDeleted,
		Summary:      "deleted project",
	})
	return nil
}

// ToggleItem flips the checked flag of one item. A project missing from the
// cache is a no-op.
func (s *Service) ToggleItem(ctx context.Context, projectID, categoryID, itemID string) error {
	return s.updateItem(ctx, projectID, categoryID, itemID, ToggleChecked, activity.TypeItemToggled)
}

// SetItemComment replaces the comment of one item verbatim. A project missing
// from the cache is a no-op.
func (s *Service) SetItemComment(ctx context.Context, projectID, categoryID, itemID, comment string) error {
	return s.updateItem(ctx, projectID, categoryID, itemID, SetComment(comment), activity.TypeItemCommented)
}

// updateItem writes the whole recomputed categories collection as a single
// field replacement, then swaps it into the cache.
func (s *Service) updateItem(ctx context.Context, projectID, categoryID, itemID string, fn func(Item) Item, kind activity.ActivityType) error {
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return err
	}
	defer release()

	current, ok := s.cached(projectID)
	if !ok {
		return nil
	}
	updated := UpdateItem(current.Categories, categoryID, itemID, fn)

	if err := s.store.Replace(ctx, Collection, projectID, map[string]any{"categories": updated}); err != nil {
		s.logger.Error("updating project", "project_id", projectID, "category_id", categoryID, "item_id", itemID, "error", err)
		return fmt.Errorf("updating item: %w", err)
	}

	s.mu.Lock()
	merged := false
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].Categories = updated
			merged = true
			break
		}
	}
	s.mu.Unlock()
	if !merged {
		s.logger.Warn("project left cache during update", "project_id", projectID)
	}

	entry := &activity.ActivityEntry{
		ProjectID:    projectID,
		CategoryID:   categoryID,
		ItemID:       itemID,
		ActivityType: kind,
	}
	if item, ok := (Project{Categories: updated}).Find(categoryID, itemID); ok {
		switch kind {
		case activity.TypeItemToggled:
			entry.Summary = fmt.Sprintf("%s: checked=%t", item.Title, item.Checked)
		default:
			entry.Summary = fmt.Sprintf("%s: comment updated", item.Title)
		}
	}
	s.record(ctx, entry)
	return nil
}

// cached returns the cached project without copying. Callers must not modify
// the returned slices.
func (s *Service) cached(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (s *Service) lockProject(ctx context.Context, id string) (func(), error) {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &projectLock{sem: semaphore.NewWeighted(1)}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		s.unref(id, l)
		return nil, fmt.Errorf("waiting for project %s: %w", id, err)
	}
	return func() {
		l.sem.Release(1)
		s.unref(id, l)
	}, nil
}

func (s *Service) unref(id string, l *projectLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
}

func (s *Service) record(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activity == nil {
		return
	}
	if err := s.activity.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("recording activity", "project_id", entry.ProjectID, "type", entry.ActivityType, "error", err)
	}
}
