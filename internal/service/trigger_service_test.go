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

// TestTriggerJourney walks the full lifecycle of a templated project:
// instantiate, activate the trigger mid-way, verify the propagated
// date, deactivate, and confirm the sentinel is restored. Each step
// also has to survive a cold start from the database.
func TestTriggerJourney(t *testing.T) {
	clock := func() time.Time { return testutil.Day(2025, time.June, 12) }
	c := setupCore(t, clock)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)
	triggerID := p.Triggers[0].ID

	out, err := c.Triggers.Activate(ctx, p.ID, triggerID)
	require.NoError(t, err)
	assert.False(t, out.NoOp)

	revise := subByTitle(t, out.Project, "Revision done")
	assert.Equal(t, testutil.Day(2025, time.June, 17), revise.Date, "five days after the June 12 activation")
	assert.False(t, revise.Unresolved)
	require.NotNil(t, out.Project.Triggers[0].ActivationDate)
	assert.Equal(t, testutil.Day(2025, time.June, 12), *out.Project.Triggers[0].ActivationDate)

	reloaded, err := c.rehydrate(t).Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Project.SubDeadlines, reloaded.SubDeadlines)
	assert.Equal(t, out.Project.Triggers, reloaded.Triggers)

	out, err = c.Triggers.Deactivate(ctx, p.ID, triggerID)
	require.NoError(t, err)
	assert.False(t, out.NoOp)

	revise = subByTitle(t, out.Project, "Revision done")
	assert.Equal(t, testutil.Day(2025, time.June, 30), revise.Date)
	assert.True(t, revise.Unresolved)
	assert.Nil(t, out.Project.Triggers[0].ActivationDate)
}

func TestActivate_NoOp(t *testing.T) {
	c := setupCore(t, func() time.Time { return testutil.Day(2025, time.June, 12) })
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)
	triggerID := p.Triggers[0].ID

	first, err := c.Triggers.Activate(ctx, p.ID, triggerID)
	require.NoError(t, err)
	second, err := c.Triggers.Activate(ctx, p.ID, triggerID)
	require.NoError(t, err)

	assert.True(t, second.NoOp)
	assert.Equal(t, first.Project.SubDeadlines, second.Project.SubDeadlines)
	assert.Equal(t, first.Project.UpdatedAt, second.Project.UpdatedAt, "no-ops do not touch the project")
}

func TestDeactivate_PendingIsNoOp(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	out, err := c.Triggers.Deactivate(ctx, p.ID, p.Triggers[0].ID)
	require.NoError(t, err)
	assert.True(t, out.NoOp)
}

func TestTransition_UnknownIDs(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	_, err = c.Triggers.Activate(ctx, "missing", p.Triggers[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.Triggers.Activate(ctx, p.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTriggersForProject_TemplateOrder(t *testing.T) {
	c := setupCore(t, nil)
	ctx := context.Background()

	p, err := c.Projects.InstantiateProject(ctx, "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	// A manual trigger named to sort first alphabetically still lists
	// after the blueprint-backed one.
	_, err = c.Projects.AddTrigger(ctx, p.ID, "Aardvark check")
	require.NoError(t, err)

	triggers, err := c.Triggers.TriggersForProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, triggers, 2)
	assert.Equal(t, "Review", triggers[0].Name)
	assert.Equal(t, "Aardvark check", triggers[1].Name)
}
