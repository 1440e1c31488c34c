package template

import (
	"testing"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInstantiate_ResolvesFinalDeadlineOffsets(t *testing.T) {
	tpl, err := Compile(essaySchema())
	require.NoError(t, err)

	final := date(2025, 6, 30)
	project, err := Instantiate(tpl, final, "Essay on Hume")
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Essay on Hume", project.Title)
	assert.Equal(t, "essay", project.TemplateID)
	assert.Equal(t, final, project.FinalDeadline)

	draft := project.SubDeadlineByBlueprintID("draft")
	require.NotNil(t, draft)
	assert.Equal(t, date(2025, 6, 20), draft.Date, "final deadline minus ten days")
	assert.False(t, draft.Unresolved)
	assert.False(t, draft.IsCompleted)
}

func TestInstantiate_TriggerAnchoredUsesSentinel(t *testing.T) {
	tpl, err := Compile(essaySchema())
	require.NoError(t, err)

	final := date(2025, 6, 30)
	project, err := Instantiate(tpl, final, "Essay")
	require.NoError(t, err)

	for _, bpID := range []string{"revise", "print"} {
		sub := project.SubDeadlineByBlueprintID(bpID)
		require.NotNil(t, sub)
		assert.Equal(t, final, sub.Date, "sentinel is the final deadline itself")
		assert.True(t, sub.Unresolved)
	}
}

func TestInstantiate_TriggersStartPending(t *testing.T) {
	tpl, err := Compile(essaySchema())
	require.NoError(t, err)

	project, err := Instantiate(tpl, date(2025, 6, 30), "Essay")
	require.NoError(t, err)

	require.Len(t, project.Triggers, 2)
	for _, tr := range project.Triggers {
		assert.False(t, tr.IsActive)
		assert.Nil(t, tr.ActivationDate)
		assert.NotEmpty(t, tr.BlueprintID)
	}
}

func TestInstantiate_SubDeadlinesSorted(t *testing.T) {
	tpl, err := Compile(essaySchema())
	require.NoError(t, err)

	project, err := Instantiate(tpl, date(2025, 6, 30), "Essay")
	require.NoError(t, err)

	assert.True(t, scheduler.SubDeadlinesSorted(project.SubDeadlines))
	// The resolved draft (Jun 20) precedes the sentinel entries (Jun 30).
	assert.Equal(t, "draft", project.SubDeadlines[0].BlueprintID)
}

func TestInstantiate_AllOrNothingOnOverflow(t *testing.T) {
	schema := essaySchema()
	schema.SubDeadlines = append(schema.SubDeadlines, SubDeadlineConfig{
		ID:    "far",
		Title: "Far future",
		Offset: OffsetConfig{
			Anchor: "final_deadline",
			Amount: 120000,
			Unit:   "month",
		},
	})
	tpl, err := Compile(schema)
	require.NoError(t, err)

	project, err := Instantiate(tpl, date(2025, 6, 30), "Essay")
	require.Error(t, err)
	assert.Nil(t, project, "no partial project on failure")

	var instErr *domain.InstantiationError
	require.ErrorAs(t, err, &instErr)
	assert.Equal(t, "essay", instErr.TemplateID)
	assert.ErrorIs(t, err, domain.ErrCalendarOverflow)
}

func TestInstantiate_TruncatesFinalDeadlineToDay(t *testing.T) {
	tpl, err := Compile(essaySchema())
	require.NoError(t, err)

	noonish := time.Date(2025, 6, 30, 14, 30, 0, 0, time.UTC)
	project, err := Instantiate(tpl, noonish, "Essay")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 30), project.FinalDeadline)
}
