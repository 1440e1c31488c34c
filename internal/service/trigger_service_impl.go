package service

import (
	"context"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
)

type triggerService struct {
	store    *schedule.Store
	engine   *schedule.Engine
	observer UseCaseObserver
}

// NewTriggerService exposes the trigger engine to the presentation
// layer.
func NewTriggerService(store *schedule.Store, engine *schedule.Engine, observers ...UseCaseObserver) TriggerService {
	return &triggerService{
		store:    store,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *triggerService) transition(ctx context.Context, name, projectID, triggerID string,
	fn func(context.Context, string, string) (*schedule.TransitionOutcome, error)) (outcome *schedule.TransitionOutcome, err error) {

	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id": projectID,
		"trigger_id": triggerID,
	}
	defer func() {
		if outcome != nil {
			fields["noop"] = outcome.NoOp
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return fn(ctx, projectID, triggerID)
}

func (s *triggerService) Activate(ctx context.Context, projectID, triggerID string) (*schedule.TransitionOutcome, error) {
	return s.transition(ctx, "activate-trigger", projectID, triggerID, s.engine.Activate)
}

func (s *triggerService) Deactivate(ctx context.Context, projectID, triggerID string) (*schedule.TransitionOutcome, error) {
	return s.transition(ctx, "deactivate-trigger", projectID, triggerID, s.engine.Deactivate)
}

func (s *triggerService) TriggersForProject(ctx context.Context, projectID string) ([]domain.Trigger, error) {
	return s.store.TriggersForProject(projectID)
}
