package template

import (
	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// Compile validates a parsed schema and builds the immutable domain
// template, including the precomputed dependents map. A schema that
// violates the blueprint invariants is rejected with a
// TemplateIntegrityError naming the offending blueprint.
func Compile(schema *TemplateSchema) (*domain.Template, error) {
	if schema.ID == "" {
		return nil, &domain.TemplateIntegrityError{TemplateID: schema.Name, Reason: "template id is required"}
	}
	if schema.Name == "" {
		return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, Reason: "template name is required"}
	}
	if len(schema.SubDeadlines) == 0 {
		return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, Reason: "at least one sub-deadline blueprint is required"}
	}

	tpl := &domain.Template{
		ID:         schema.ID,
		Name:       schema.Name,
		Dependents: make(map[string][]string),
	}

	seen := map[string]bool{}

	for i, tc := range schema.Triggers {
		if tc.ID == "" {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, Reason: "trigger blueprint id is required"}
		}
		if tc.Name == "" {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, BlueprintID: tc.ID, Reason: "trigger name is required"}
		}
		if seen[tc.ID] {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, BlueprintID: tc.ID, Reason: "duplicate blueprint id"}
		}
		seen[tc.ID] = true

		order := i
		if tc.Order != nil {
			order = *tc.Order
		}
		tpl.Triggers = append(tpl.Triggers, domain.TriggerBlueprint{
			ID:         tc.ID,
			Name:       tc.Name,
			OrderIndex: order,
		})
	}

	for _, sc := range schema.SubDeadlines {
		if sc.ID == "" {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, Reason: "sub-deadline blueprint id is required"}
		}
		if sc.Title == "" {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, BlueprintID: sc.ID, Reason: "sub-deadline title is required"}
		}
		if seen[sc.ID] {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, BlueprintID: sc.ID, Reason: "duplicate blueprint id"}
		}
		seen[sc.ID] = true

		if !domain.ValidOffsetUnits[sc.Offset.Unit] {
			return nil, &domain.TemplateIntegrityError{
				TemplateID:  schema.ID,
				BlueprintID: sc.ID,
				Reason:      "offset unit must be day, week, or month",
			}
		}

		anchor, err := ParseAnchor(sc.Offset.Anchor)
		if err != nil {
			return nil, &domain.TemplateIntegrityError{TemplateID: schema.ID, BlueprintID: sc.ID, Reason: err.Error()}
		}
		if anchor.Kind == domain.AnchorTrigger {
			if tpl.TriggerBlueprintByID(anchor.TriggerBlueprintID) == nil {
				return nil, &domain.TemplateIntegrityError{
					TemplateID:  schema.ID,
					BlueprintID: sc.ID,
					Reason:      "offset anchors to unknown trigger blueprint " + anchor.TriggerBlueprintID,
				}
			}
			tpl.Dependents[anchor.TriggerBlueprintID] = append(tpl.Dependents[anchor.TriggerBlueprintID], sc.ID)
		}

		tpl.SubDeadlines = append(tpl.SubDeadlines, domain.SubDeadlineBlueprint{
			ID:    sc.ID,
			Title: sc.Title,
			Offset: domain.Offset{
				Anchor: anchor,
				Amount: sc.Offset.Amount,
				Unit:   domain.OffsetUnit(sc.Offset.Unit),
			},
		})
	}

	return tpl, nil
}
