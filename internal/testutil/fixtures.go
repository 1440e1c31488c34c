package testutil

import (
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/google/uuid"
)

// Day returns a UTC date at midnight, the granularity all schedule dates
// use.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewEssayTemplate is the canonical test template: one sub-deadline ten
// days before the final deadline, a "Review" trigger, and one
// sub-deadline five days after review.
func NewEssayTemplate() *domain.Template {
	return &domain.Template{
		ID:   "essay",
		Name: "Essay",
		Triggers: []domain.TriggerBlueprint{
			{ID: "review", Name: "Review", OrderIndex: 0},
		},
		SubDeadlines: []domain.SubDeadlineBlueprint{
			{
				ID:    "draft",
				Title: "Draft done",
				Offset: domain.Offset{
					Anchor: domain.FinalDeadlineAnchor(),
					Amount: -10,
					Unit:   domain.UnitDay,
				},
			},
			{
				ID:    "revise",
				Title: "Revision done",
				Offset: domain.Offset{
					Anchor: domain.TriggerAnchor("review"),
					Amount: 5,
					Unit:   domain.UnitDay,
				},
			},
		},
		Dependents: map[string][]string{
			"review": {"revise"},
		},
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithTemplateID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.TemplateID = id
	}
}

func WithSubDeadline(sub domain.SubDeadline) ProjectOption {
	return func(p *domain.Project) {
		p.SubDeadlines = append(p.SubDeadlines, sub)
	}
}

func WithTrigger(tr domain.Trigger) ProjectOption {
	return func(p *domain.Project) {
		p.Triggers = append(p.Triggers, tr)
	}
}

// NewTestProject builds a manual project with the given final deadline.
func NewTestProject(title string, finalDeadline time.Time, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:            uuid.New().String(),
		Title:         title,
		FinalDeadline: finalDeadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
