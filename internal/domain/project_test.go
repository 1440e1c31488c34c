package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_AllTriggersActive(t *testing.T) {
	tests := []struct {
		name     string
		triggers []Trigger
		want     bool
	}{
		{"no triggers", nil, false},
		{"all pending", []Trigger{{ID: "a"}, {ID: "b"}}, false},
		{"mixed", []Trigger{{ID: "a", IsActive: true}, {ID: "b"}}, false},
		{"all active", []Trigger{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{Triggers: tc.triggers}
			assert.Equal(t, tc.want, p.AllTriggersActive())
		})
	}
}

func TestProject_Clone_IsDeep(t *testing.T) {
	at := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	p := &Project{
		ID:            "p1",
		Title:         "Thesis",
		FinalDeadline: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		SubDeadlines: []SubDeadline{
			{ID: "s1", Title: "Draft", Date: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		},
		Triggers: []Trigger{
			{ID: "t1", Name: "Review", IsActive: true, ActivationDate: &at},
		},
	}

	cp := p.Clone()
	require.Equal(t, p, cp)

	cp.SubDeadlines[0].IsCompleted = true
	cp.Triggers[0].IsActive = false
	*cp.Triggers[0].ActivationDate = at.AddDate(0, 0, 5)

	assert.False(t, p.SubDeadlines[0].IsCompleted, "clone must not share sub-deadline storage")
	assert.True(t, p.Triggers[0].IsActive, "clone must not share trigger storage")
	assert.Equal(t, at, *p.Triggers[0].ActivationDate, "clone must not share activation date pointer")
}

func TestProject_Lookups(t *testing.T) {
	p := &Project{
		SubDeadlines: []SubDeadline{
			{ID: "s1", BlueprintID: "bp-draft"},
			{ID: "s2"},
		},
		Triggers: []Trigger{{ID: "t1"}},
	}

	assert.NotNil(t, p.SubDeadlineByID("s2"))
	assert.Nil(t, p.SubDeadlineByID("missing"))
	assert.Equal(t, "s1", p.SubDeadlineByBlueprintID("bp-draft").ID)
	assert.Nil(t, p.SubDeadlineByBlueprintID(""), "empty blueprint ID never matches")
	assert.NotNil(t, p.TriggerByID("t1"))
	assert.Nil(t, p.TriggerByID("t2"))
}
