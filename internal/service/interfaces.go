package service

import (
	"context"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
)

// ProjectService is the mutation and query surface the presentation
// layer calls for projects. Every mutating operation returns the fresh
// canonical project; callers re-fetch instead of keeping copies.
type ProjectService interface {
	InstantiateProject(ctx context.Context, templateID string, finalDeadline time.Time, title string) (*domain.Project, error)
	CreateManual(ctx context.Context, title string, finalDeadline time.Time) (*domain.Project, error)
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Remove(ctx context.Context, projectID string) error
	SetFinalDeadline(ctx context.Context, projectID string, date time.Time) (*domain.Project, error)
	AddSubDeadline(ctx context.Context, projectID, title string, date time.Time) (*domain.Project, error)
	AddTrigger(ctx context.Context, projectID, name string) (*domain.Project, error)
	ToggleSubDeadlineCompletion(ctx context.Context, subDeadlineID, projectID string) (*domain.Project, error)
	OriginalTemplateDate(ctx context.Context, subDeadlineID, projectID string) (*time.Time, error)
	ProjectsAllTriggersActive(ctx context.Context) ([]*domain.Project, error)
}

// TriggerService exposes the trigger state machine.
type TriggerService interface {
	Activate(ctx context.Context, projectID, triggerID string) (*schedule.TransitionOutcome, error)
	Deactivate(ctx context.Context, projectID, triggerID string) (*schedule.TransitionOutcome, error)
	TriggersForProject(ctx context.Context, projectID string) ([]domain.Trigger, error)
}

// TemplateService exposes the read-only template catalog.
type TemplateService interface {
	List(ctx context.Context) ([]*domain.Template, error)
	Get(ctx context.Context, id string) (*domain.Template, error)
	Problems(ctx context.Context) []error
}
