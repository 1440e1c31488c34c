package repository

import (
	"context"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// ProjectSetRepo persists the full project set as a unit. The schedule
// store writes through after every mutation, so every save replaces the
// complete set atomically.
type ProjectSetRepo interface {
	LoadAll(ctx context.Context) ([]*domain.Project, error)
	SaveAll(ctx context.Context, projects []*domain.Project) error
}
