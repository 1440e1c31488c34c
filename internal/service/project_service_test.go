package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/testutil"
)

func subByTitle(t *testing.T, p *domain.Project, title string) *domain.SubDeadline {
	t.Helper()
	for i := range p.SubDeadlines {
		if p.SubDeadlines[i].Title == title {
			return &p.SubDeadlines[i]
		}
	}
	t.Fatalf("no sub-deadline titled %q", title)
	return nil
}

func TestInstantiateProject(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay on Go")
	require.NoError(t, err)
	require.Len(t, p.SubDeadlines, 2)
	require.Len(t, p.Triggers, 1)

	draft := subByTitle(t, p, "Draft done")
	assert.Equal(t, testutil.Day(2025, time.June, 20), draft.Date)
	assert.False(t, draft.Unresolved)

	revise := subByTitle(t, p, "Revision done")
	assert.Equal(t, testutil.Day(2025, time.June, 30), revise.Date, "trigger-anchored dates sit on the final deadline until activation")
	assert.True(t, revise.Unresolved)

	assert.False(t, p.Triggers[0].IsActive)
	assert.Nil(t, p.Triggers[0].ActivationDate)
	assert.Equal(t, "essay", p.TemplateID)

	// Survives a cold start from the same database.
	fresh := c.rehydrate(t)
	reloaded, err := fresh.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.SubDeadlines, reloaded.SubDeadlines)
	assert.Equal(t, p.Triggers, reloaded.Triggers)
}

func TestInstantiateProject_UnknownTemplate(t *testing.T) {
	c := setupCore(t, nil)

	_, err := c.Projects.InstantiateProject(context.Background(), "nope", testutil.Day(2025, time.June, 30), "Ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	projects, err := c.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCreateManual(t *testing.T) {
	c := setupCore(t, nil)

	deadline := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)
	p, err := c.Projects.CreateManual(context.Background(), "Tax return", deadline)
	require.NoError(t, err)

	assert.Equal(t, testutil.Day(2025, time.March, 15), p.FinalDeadline, "time of day is discarded")
	assert.Empty(t, p.SubDeadlines)
	assert.Empty(t, p.Triggers)
	assert.Empty(t, p.TemplateID)
}

func TestSetFinalDeadline(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	updated, err := c.Projects.SetFinalDeadline(ctx, p.ID, testutil.Day(2025, time.July, 31))
	require.NoError(t, err)

	assert.Equal(t, testutil.Day(2025, time.July, 31), updated.FinalDeadline)
	assert.Equal(t, testutil.Day(2025, time.July, 31), subByTitle(t, updated, "Revision done").Date,
		"unresolved sentinels follow the deadline")
	assert.Equal(t, testutil.Day(2025, time.June, 20), subByTitle(t, updated, "Draft done").Date,
		"resolved dates stay put")
}

func TestOriginalTemplateDate(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	p, err = c.Projects.SetFinalDeadline(ctx, p.ID, testutil.Day(2025, time.July, 31))
	require.NoError(t, err)

	t.Run("shows drift after the deadline moves", func(t *testing.T) {
		draft := subByTitle(t, p, "Draft done")
		hint, err := c.Projects.OriginalTemplateDate(ctx, draft.ID, p.ID)
		require.NoError(t, err)
		require.NotNil(t, hint)
		assert.Equal(t, testutil.Day(2025, time.July, 21), *hint)
		assert.Equal(t, testutil.Day(2025, time.June, 20), draft.Date, "the stored date is untouched")
	})

	t.Run("trigger-anchored hint is the sentinel", func(t *testing.T) {
		revise := subByTitle(t, p, "Revision done")
		hint, err := c.Projects.OriginalTemplateDate(ctx, revise.ID, p.ID)
		require.NoError(t, err)
		require.NotNil(t, hint)
		assert.Equal(t, testutil.Day(2025, time.July, 31), *hint)
	})

	t.Run("manual entries have no hint", func(t *testing.T) {
		p, err := c.Projects.AddSubDeadline(ctx, p.ID, "Extra read-through", testutil.Day(2025, time.July, 1))
		require.NoError(t, err)
		manual := subByTitle(t, p, "Extra read-through")

		hint, err := c.Projects.OriginalTemplateDate(ctx, manual.ID, p.ID)
		require.NoError(t, err)
		assert.Nil(t, hint)
	})

	t.Run("unknown sub-deadline", func(t *testing.T) {
		_, err := c.Projects.OriginalTemplateDate(ctx, "missing", p.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestToggleSubDeadlineCompletion(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)
	draftID := subByTitle(t, p, "Draft done").ID

	p, err = c.Projects.ToggleSubDeadlineCompletion(ctx, draftID, p.ID)
	require.NoError(t, err)
	assert.True(t, subByTitle(t, p, "Draft done").IsCompleted)

	p, err = c.Projects.ToggleSubDeadlineCompletion(ctx, draftID, p.ID)
	require.NoError(t, err)
	assert.False(t, subByTitle(t, p, "Draft done").IsCompleted)

	_, err = c.Projects.ToggleSubDeadlineCompletion(ctx, "missing", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddSubDeadlineAndTrigger(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.CreateManual(ctx, "Move house", testutil.Day(2025, time.September, 1))
	require.NoError(t, err)

	p, err = c.Projects.AddSubDeadline(ctx, p.ID, "Book movers", testutil.Day(2025, time.August, 10))
	require.NoError(t, err)
	p, err = c.Projects.AddSubDeadline(ctx, p.ID, "Pack boxes", testutil.Day(2025, time.August, 1))
	require.NoError(t, err)

	require.Len(t, p.SubDeadlines, 2)
	assert.Equal(t, "Pack boxes", p.SubDeadlines[0].Title, "held in chronological order")
	assert.Empty(t, p.SubDeadlines[0].BlueprintID, "manual entries carry no blueprint")

	p, err = c.Projects.AddTrigger(ctx, p.ID, "Contracts exchanged")
	require.NoError(t, err)
	require.Len(t, p.Triggers, 1)
	assert.False(t, p.Triggers[0].IsActive)
	assert.Empty(t, p.Triggers[0].BlueprintID)
}

func TestRemoveProject(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.CreateManual(ctx, "Short lived", testutil.Day(2025, time.April, 1))
	require.NoError(t, err)

	require.NoError(t, c.Projects.Remove(ctx, p.ID))

	_, err = c.Projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, c.Projects.Remove(ctx, p.ID), domain.ErrNotFound)

	fresh := c.rehydrate(t)
	assert.Empty(t, fresh.List())
}

func TestProjectsAllTriggersActive(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	done, err := c.Projects.ProjectsAllTriggersActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, done)

	_, err = c.Triggers.Activate(ctx, p.ID, p.Triggers[0].ID)
	require.NoError(t, err)

	done, err = c.Projects.ProjectsAllTriggersActive(ctx)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, p.ID, done[0].ID)
}
