package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/scheduler"
)

// Persistence is the collaborator owning durable storage of the full
// project set. The store writes through after every successful mutation.
type Persistence interface {
	LoadAll(ctx context.Context) ([]*domain.Project, error)
	SaveAll(ctx context.Context, projects []*domain.Project) error
}

// TemplateCatalog resolves originating templates, used for trigger
// ordering and date propagation. Lookup-only; templates are never owned
// by the schedule side.
type TemplateCatalog interface {
	ByID(id string) (*domain.Template, error)
}

// Store owns the live project set. All mutation goes through Add, Remove
// and Update, which re-establish the sort invariant and write through to
// persistence. Reads hand out deep copies so no caller can mutate owned
// state directly.
type Store struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	persist  Persistence
	catalog  TemplateCatalog
}

// NewStore creates an empty store. Call Hydrate to load persisted
// projects.
func NewStore(persist Persistence, catalog TemplateCatalog) *Store {
	return &Store{
		projects: make(map[string]*domain.Project),
		persist:  persist,
		catalog:  catalog,
	}
}

// Hydrate replaces the in-memory set with the persisted one.
func (s *Store) Hydrate(ctx context.Context) error {
	projects, err := s.persist.LoadAll(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "load", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		scheduler.SortSubDeadlines(p.SubDeadlines)
		s.projects[p.ID] = p
	}
	return nil
}

// Add inserts a project and writes through.
func (s *Store) Add(ctx context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID]; exists {
		return fmt.Errorf("project %q already exists", p.ID)
	}

	owned := p.Clone()
	scheduler.SortSubDeadlines(owned.SubDeadlines)
	s.projects[owned.ID] = owned
	return s.saveAllLocked(ctx)
}

// Remove deletes a project and writes through.
func (s *Store) Remove(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}
	delete(s.projects, projectID)
	return s.saveAllLocked(ctx)
}

// Update applies a mutator to a single project under the store's lock.
// The mutator runs on a working copy; only a successful return commits,
// after which the sort invariant is re-established, UpdatedAt bumped and
// the set written through. The fresh canonical project is returned;
// collaborators must re-fetch rather than hold their own copies.
func (s *Store) Update(ctx context.Context, projectID string, mutate func(*domain.Project) error) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}

	working := current.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}

	scheduler.SortSubDeadlines(working.SubDeadlines)
	working.UpdatedAt = time.Now().UTC()
	s.projects[projectID] = working

	if err := s.saveAllLocked(ctx); err != nil {
		return working.Clone(), err
	}
	return working.Clone(), nil
}

// Get returns a deep copy of a project.
func (s *Store) Get(projectID string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// List returns deep copies of all projects, ordered by creation time
// then ID for determinism.
func (s *Store) List() []*domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// ProjectsAllTriggersActive returns projects whose trigger set is
// non-empty and fully active. Collaborators use this to partition
// in-progress from fully-triggered projects.
func (s *Store) ProjectsAllTriggersActive() []*domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Project
	for _, p := range s.listLocked() {
		if p.AllTriggersActive() {
			out = append(out, p)
		}
	}
	return out
}

// TriggersForProject returns the project's triggers ordered by the
// template-authored order index of their originating blueprints, with
// manually added triggers last, then by name.
func (s *Store) TriggersForProject(projectID string) ([]domain.Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}

	var tpl *domain.Template
	if p.TemplateID != "" && s.catalog != nil {
		tpl, _ = s.catalog.ByID(p.TemplateID) // missing template degrades to name order
	}

	triggers := make([]domain.Trigger, len(p.Triggers))
	copy(triggers, p.Triggers)
	scheduler.SortTriggers(triggers, tpl)
	return triggers, nil
}

func (s *Store) listLocked() []*domain.Project {
	out := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// saveAllLocked writes the full set through to persistence. The caller
// holds the lock. The in-memory mutation stays applied even when the
// save fails; the error is surfaced for the caller to handle.
func (s *Store) saveAllLocked(ctx context.Context) error {
	snapshot := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		snapshot = append(snapshot, p.Clone())
	}
	sort.Slice(snapshot, func(i, j int) bool {
		if !snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
		}
		return snapshot[i].ID < snapshot[j].ID
	})

	if err := s.persist.SaveAll(ctx, snapshot); err != nil {
		return &domain.PersistenceError{Op: "save", Cause: err}
	}
	return nil
}
