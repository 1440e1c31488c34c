package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/scheduler"
)

// TransitionOutcome reports the result of a trigger transition. NoOp is
// set when the trigger was already in the requested state; the operation
// still succeeds and Project carries the current canonical state.
type TransitionOutcome struct {
	Project *domain.Project
	NoOp    bool
}

// Engine owns the trigger state machine: Pending -> Active on
// activation, Active -> Pending on deactivation. On activation it
// re-resolves every sub-deadline anchored to the trigger against the
// activation date; deactivation reverts them to the unresolved sentinel.
// Triggers never auto-activate each other; only sub-deadline dates
// propagate, and only one level deep.
type Engine struct {
	store   *Store
	catalog TemplateCatalog
	clock   func() time.Time
}

// NewEngine creates a trigger engine bound to the store and template
// catalog. A clock may be injected for tests; the default is UTC now.
func NewEngine(store *Store, catalog TemplateCatalog, clock ...func() time.Time) *Engine {
	e := &Engine{
		store:   store,
		catalog: catalog,
		clock:   func() time.Time { return time.Now().UTC() },
	}
	if len(clock) > 0 && clock[0] != nil {
		e.clock = clock[0]
	}
	return e
}

// Activate transitions a pending trigger to active, recording the
// activation date and propagating resolved dates to dependent
// sub-deadlines. Activating an already-active trigger is a no-op.
func (e *Engine) Activate(ctx context.Context, projectID, triggerID string) (*TransitionOutcome, error) {
	current, err := e.store.Get(projectID)
	if err != nil {
		return nil, err
	}
	tr := current.TriggerByID(triggerID)
	if tr == nil {
		return nil, fmt.Errorf("trigger %q: %w", triggerID, domain.ErrNotFound)
	}
	if tr.IsActive {
		return &TransitionOutcome{Project: current, NoOp: true}, nil
	}

	activatedAt := scheduler.TruncateToDay(e.clock())

	updated, err := e.store.Update(ctx, projectID, func(p *domain.Project) error {
		tr := p.TriggerByID(triggerID)
		if tr == nil {
			return fmt.Errorf("trigger %q: %w", triggerID, domain.ErrNotFound)
		}
		tr.IsActive = true
		tr.ActivationDate = &activatedAt
		return e.propagate(p, tr)
	})
	if err != nil {
		return nil, err
	}
	return &TransitionOutcome{Project: updated}, nil
}

// Deactivate transitions an active trigger back to pending. Dependent
// sub-deadlines revert to the unresolved sentinel; their resolved dates
// are not retained, reactivation recomputes them fresh. Deactivating an
// already-pending trigger is a no-op.
func (e *Engine) Deactivate(ctx context.Context, projectID, triggerID string) (*TransitionOutcome, error) {
	current, err := e.store.Get(projectID)
	if err != nil {
		return nil, err
	}
	tr := current.TriggerByID(triggerID)
	if tr == nil {
		return nil, fmt.Errorf("trigger %q: %w", triggerID, domain.ErrNotFound)
	}
	if !tr.IsActive {
		return &TransitionOutcome{Project: current, NoOp: true}, nil
	}

	updated, err := e.store.Update(ctx, projectID, func(p *domain.Project) error {
		tr := p.TriggerByID(triggerID)
		if tr == nil {
			return fmt.Errorf("trigger %q: %w", triggerID, domain.ErrNotFound)
		}
		tr.IsActive = false
		tr.ActivationDate = nil
		return e.revert(p, tr)
	})
	if err != nil {
		return nil, err
	}
	return &TransitionOutcome{Project: updated}, nil
}

// propagate overwrites the dates of every sub-deadline whose originating
// blueprint anchors to the trigger, resolving against the activation
// date. Completion flags are untouched; they are orthogonal to trigger
// state.
func (e *Engine) propagate(p *domain.Project, tr *domain.Trigger) error {
	deps, tpl := e.dependents(p, tr)
	for _, bpID := range deps {
		bp := tpl.SubDeadlineBlueprintByID(bpID)
		sub := p.SubDeadlineByBlueprintID(bpID)
		if bp == nil || sub == nil {
			continue
		}
		date, err := scheduler.Resolve(bp.Offset, *tr.ActivationDate)
		if err != nil {
			return fmt.Errorf("resolving %q against trigger %q: %w", bpID, tr.Name, err)
		}
		sub.Date = date
		sub.Unresolved = false
	}
	return nil
}

// revert restores dependent sub-deadlines to the sentinel state they
// held immediately after instantiation.
func (e *Engine) revert(p *domain.Project, tr *domain.Trigger) error {
	deps, _ := e.dependents(p, tr)
	for _, bpID := range deps {
		sub := p.SubDeadlineByBlueprintID(bpID)
		if sub == nil {
			continue
		}
		sub.Date = p.FinalDeadline
		sub.Unresolved = true
	}
	return nil
}

// dependents returns the blueprint IDs anchored to the trigger, using
// the template's precomputed dependents map. Manual triggers and
// projects without a resolvable template have no dependents.
func (e *Engine) dependents(p *domain.Project, tr *domain.Trigger) ([]string, *domain.Template) {
	if p.TemplateID == "" || tr.BlueprintID == "" || e.catalog == nil {
		return nil, nil
	}
	tpl, err := e.catalog.ByID(p.TemplateID)
	if err != nil {
		// Stale template reference degrades to no propagation.
		return nil, nil
	}
	return tpl.Dependents[tr.BlueprintID], tpl
}
