package testutil

import (
	"context"
	"sync"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// MemoryPersistence is an in-memory stand-in for the persistence
// collaborator. It records every SaveAll for write-through assertions
// and can be primed with projects for hydration tests.
type MemoryPersistence struct {
	mu        sync.Mutex
	Projects  []*domain.Project
	SaveCount int
	LoadErr   error
	SaveErr   error
}

func (m *MemoryPersistence) LoadAll(ctx context.Context) ([]*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]*domain.Project, len(m.Projects))
	for i, p := range m.Projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (m *MemoryPersistence) SaveAll(ctx context.Context, projects []*domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Projects = make([]*domain.Project, len(projects))
	for i, p := range projects {
		m.Projects[i] = p.Clone()
	}
	return nil
}
