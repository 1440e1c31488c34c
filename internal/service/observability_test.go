package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeobrien/deadline-calendar/internal/testutil"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func TestProjectService_EmitsUseCaseEvents(t *testing.T) {
	c := setupCore(t, nil)
	obs := &recordingObserver{}
	svc := NewProjectService(c.Store, c.Catalog, obs)

	_, err := svc.InstantiateProject(context.Background(), "essay", testutil.Day(2025, time.June, 30), "Essay")
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "instantiate-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "essay", obs.events[0].Fields["template"])

	_, err = svc.InstantiateProject(context.Background(), "missing", testutil.Day(2025, time.June, 30), "Ghost")
	require.Error(t, err)
	require.Len(t, obs.events, 2)
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, err)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "activate-trigger",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project_id": "p1"},
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=activate-trigger")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "project_id=p1")
}
