package domain

import "time"

// SubDeadline is a concrete dated step owned by its project. BlueprintID
// is a weak back-reference to the originating template blueprint, used
// only to recover the template-relative date for display; it never routes
// ownership or mutation.
type SubDeadline struct {
	ID          string
	Title       string
	Date        time.Time
	Unresolved  bool
	IsCompleted bool
	BlueprintID string
}

// Trigger is a named event owned by its project. It starts pending and
// gains an activation date only when explicitly activated.
type Trigger struct {
	ID             string
	Name           string
	IsActive       bool
	ActivationDate *time.Time
	BlueprintID    string
}

// Project carries a final deadline plus the sub-deadlines and triggers
// derived from its template. TemplateID is empty for manually constructed
// projects. SubDeadlines are kept sorted by date ascending after every
// mutation; all mutation goes through the schedule store.
type Project struct {
	ID            string
	Title         string
	FinalDeadline time.Time
	SubDeadlines  []SubDeadline
	Triggers      []Trigger
	TemplateID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SubDeadlineByID returns the sub-deadline with the given ID, or nil.
func (p *Project) SubDeadlineByID(id string) *SubDeadline {
	for i := range p.SubDeadlines {
		if p.SubDeadlines[i].ID == id {
			return &p.SubDeadlines[i]
		}
	}
	return nil
}

// SubDeadlineByBlueprintID returns the sub-deadline originating from the
// given blueprint, or nil.
func (p *Project) SubDeadlineByBlueprintID(blueprintID string) *SubDeadline {
	if blueprintID == "" {
		return nil
	}
	for i := range p.SubDeadlines {
		if p.SubDeadlines[i].BlueprintID == blueprintID {
			return &p.SubDeadlines[i]
		}
	}
	return nil
}

// TriggerByID returns the trigger with the given ID, or nil.
func (p *Project) TriggerByID(id string) *Trigger {
	for i := range p.Triggers {
		if p.Triggers[i].ID == id {
			return &p.Triggers[i]
		}
	}
	return nil
}

// AllTriggersActive reports whether the project has a non-empty trigger
// set with every trigger active.
func (p *Project) AllTriggersActive() bool {
	if len(p.Triggers) == 0 {
		return false
	}
	for i := range p.Triggers {
		if !p.Triggers[i].IsActive {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. The schedule store hands out clones so
// callers can never mutate owned state behind its back.
func (p *Project) Clone() *Project {
	cp := *p
	cp.SubDeadlines = make([]SubDeadline, len(p.SubDeadlines))
	copy(cp.SubDeadlines, p.SubDeadlines)
	cp.Triggers = make([]Trigger, len(p.Triggers))
	for i, tr := range p.Triggers {
		if tr.ActivationDate != nil {
			at := *tr.ActivationDate
			tr.ActivationDate = &at
		}
		cp.Triggers[i] = tr
	}
	return &cp
}
