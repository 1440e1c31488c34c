package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
	"github.com/aeobrien/deadline-calendar/internal/scheduler"
	"github.com/aeobrien/deadline-calendar/internal/template"
	"github.com/google/uuid"
)

type projectService struct {
	store    *schedule.Store
	catalog  schedule.TemplateCatalog
	observer UseCaseObserver
}

// NewProjectService wires the project operation surface to the schedule
// store and template catalog.
func NewProjectService(store *schedule.Store, catalog schedule.TemplateCatalog, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		store:    store,
		catalog:  catalog,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *projectService) InstantiateProject(ctx context.Context, templateID string, finalDeadline time.Time, title string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "instantiate-project", startedAt, err, map[string]any{
			"template": templateID,
			"project":  title,
		})
	}()

	tpl, err := s.catalog.ByID(templateID)
	if err != nil {
		return nil, err
	}

	project, err = template.Instantiate(tpl, finalDeadline, title)
	if err != nil {
		return nil, err
	}

	if err = s.store.Add(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) CreateManual(ctx context.Context, title string, finalDeadline time.Time) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "create-manual-project", startedAt, err, map[string]any{"project": title})
	}()

	now := time.Now().UTC()
	project = &domain.Project{
		ID:            uuid.New().String(),
		Title:         title,
		FinalDeadline: scheduler.TruncateToDay(finalDeadline),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err = s.store.Add(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.store.Get(projectID)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.store.List(), nil
}

func (s *projectService) Remove(ctx context.Context, projectID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "remove-project", startedAt, err, map[string]any{"project_id": projectID})
	}()
	return s.store.Remove(ctx, projectID)
}

// SetFinalDeadline changes the project's final deadline. Already
// resolved dates are left alone; OriginalTemplateDate exposes the drift
// between them and the new deadline. Unresolved sentinels follow the
// deadline, since the sentinel is defined as the final deadline itself.
func (s *projectService) SetFinalDeadline(ctx context.Context, projectID string, date time.Time) (*domain.Project, error) {
	date = scheduler.TruncateToDay(date)
	return s.store.Update(ctx, projectID, func(p *domain.Project) error {
		p.FinalDeadline = date
		for i := range p.SubDeadlines {
			if p.SubDeadlines[i].Unresolved {
				p.SubDeadlines[i].Date = date
			}
		}
		return nil
	})
}

func (s *projectService) AddSubDeadline(ctx context.Context, projectID, title string, date time.Time) (*domain.Project, error) {
	return s.store.Update(ctx, projectID, func(p *domain.Project) error {
		p.SubDeadlines = append(p.SubDeadlines, domain.SubDeadline{
			ID:    uuid.New().String(),
			Title: title,
			Date:  scheduler.TruncateToDay(date),
		})
		return nil
	})
}

func (s *projectService) AddTrigger(ctx context.Context, projectID, name string) (*domain.Project, error) {
	return s.store.Update(ctx, projectID, func(p *domain.Project) error {
		p.Triggers = append(p.Triggers, domain.Trigger{
			ID:   uuid.New().String(),
			Name: name,
		})
		return nil
	})
}

func (s *projectService) ToggleSubDeadlineCompletion(ctx context.Context, subDeadlineID, projectID string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "toggle-sub-deadline", startedAt, err, map[string]any{
			"project_id":      projectID,
			"sub_deadline_id": subDeadlineID,
		})
	}()

	return s.store.Update(ctx, projectID, func(p *domain.Project) error {
		sub := p.SubDeadlineByID(subDeadlineID)
		if sub == nil {
			return fmt.Errorf("sub-deadline %q: %w", subDeadlineID, domain.ErrNotFound)
		}
		sub.IsCompleted = !sub.IsCompleted
		return nil
	})
}

// OriginalTemplateDate recomputes what a sub-deadline's date would be
// from its template offset against the current final deadline. Returns
// nil for manual entries and projects without a template. Never mutates
// state.
func (s *projectService) OriginalTemplateDate(ctx context.Context, subDeadlineID, projectID string) (*time.Time, error) {
	p, err := s.store.Get(projectID)
	if err != nil {
		return nil, err
	}
	sub := p.SubDeadlineByID(subDeadlineID)
	if sub == nil {
		return nil, fmt.Errorf("sub-deadline %q: %w", subDeadlineID, domain.ErrNotFound)
	}
	if sub.BlueprintID == "" || p.TemplateID == "" {
		return nil, nil
	}

	tpl, err := s.catalog.ByID(p.TemplateID)
	if err != nil {
		return nil, nil // template gone from the catalog; no hint available
	}
	bp := tpl.SubDeadlineBlueprintByID(sub.BlueprintID)
	if bp == nil {
		return nil, nil
	}

	// Trigger-anchored blueprints have no date relative to the final
	// deadline; their template-relative state is the sentinel itself.
	if bp.Offset.Anchor.Kind == domain.AnchorTrigger {
		sentinel := p.FinalDeadline
		return &sentinel, nil
	}

	date, err := scheduler.Resolve(bp.Offset, p.FinalDeadline)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (s *projectService) ProjectsAllTriggersActive(ctx context.Context) ([]*domain.Project, error) {
	return s.store.ProjectsAllTriggersActive(), nil
}
