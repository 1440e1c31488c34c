package template

import (
	"fmt"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/scheduler"
	"github.com/google/uuid"
)

// Instantiate builds a concrete project from a template and a chosen
// final deadline. Sub-deadlines anchored to the final deadline resolve
// immediately. Trigger-anchored ones carry the final deadline itself as
// an unresolved sentinel; they only become concrete when their trigger
// activates. Every trigger blueprint becomes a pending trigger.
//
// All-or-nothing: any resolution failure aborts with an
// InstantiationError and no partial project.
func Instantiate(tpl *domain.Template, finalDeadline time.Time, title string) (*domain.Project, error) {
	now := time.Now().UTC()
	finalDeadline = scheduler.TruncateToDay(finalDeadline)

	project := &domain.Project{
		ID:            uuid.New().String(),
		Title:         title,
		FinalDeadline: finalDeadline,
		TemplateID:    tpl.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, bp := range tpl.SubDeadlines {
		sub := domain.SubDeadline{
			ID:          uuid.New().String(),
			Title:       bp.Title,
			BlueprintID: bp.ID,
		}

		switch bp.Offset.Anchor.Kind {
		case domain.AnchorFinalDeadline:
			date, err := scheduler.Resolve(bp.Offset, finalDeadline)
			if err != nil {
				return nil, &domain.InstantiationError{
					TemplateID: tpl.ID,
					Cause:      fmt.Errorf("blueprint %q: %w", bp.ID, err),
				}
			}
			sub.Date = date
		case domain.AnchorTrigger:
			sub.Date = finalDeadline
			sub.Unresolved = true
		default:
			return nil, &domain.InstantiationError{
				TemplateID: tpl.ID,
				Cause:      fmt.Errorf("blueprint %q: unknown anchor kind %q", bp.ID, bp.Offset.Anchor.Kind),
			}
		}

		project.SubDeadlines = append(project.SubDeadlines, sub)
	}

	for _, bp := range tpl.Triggers {
		project.Triggers = append(project.Triggers, domain.Trigger{
			ID:          uuid.New().String(),
			Name:        bp.Name,
			BlueprintID: bp.ID,
		})
	}

	scheduler.SortSubDeadlines(project.SubDeadlines)
	return project, nil
}
