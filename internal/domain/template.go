package domain

// SubDeadlineBlueprint is the template-level definition of a sub-deadline,
// prior to instantiation into a concrete project.
type SubDeadlineBlueprint struct {
	ID     string
	Title  string
	Offset Offset
}

// TriggerBlueprint defines a named event whose date is not known until it
// is activated on a live project. OrderIndex is the template's authored
// sequence, used as the primary presentation order for triggers.
type TriggerBlueprint struct {
	ID         string
	Name       string
	OrderIndex int
}

// Template is an immutable catalog entry. Blueprint IDs are unique within
// a template, and every trigger-anchored offset references a trigger
// blueprint in the same template; the template store rejects anything else
// at load time.
type Template struct {
	ID           string
	Name         string
	SubDeadlines []SubDeadlineBlueprint
	Triggers     []TriggerBlueprint

	// Dependents maps a trigger blueprint ID to the sub-deadline blueprint
	// IDs anchored to it, precomputed at load time so activation never has
	// to rescan the blueprint list.
	Dependents map[string][]string
}

// SubDeadlineBlueprintByID returns the sub-deadline blueprint with the
// given ID, or nil.
func (t *Template) SubDeadlineBlueprintByID(id string) *SubDeadlineBlueprint {
	for i := range t.SubDeadlines {
		if t.SubDeadlines[i].ID == id {
			return &t.SubDeadlines[i]
		}
	}
	return nil
}

// TriggerBlueprintByID returns the trigger blueprint with the given ID,
// or nil.
func (t *Template) TriggerBlueprintByID(id string) *TriggerBlueprint {
	for i := range t.Triggers {
		if t.Triggers[i].ID == id {
			return &t.Triggers[i]
		}
	}
	return nil
}
