package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const validTemplateJSON = `{
	"id": "essay",
	"name": "Essay",
	"triggers": [{"id": "review", "name": "Review"}],
	"sub_deadlines": [
		{"id": "draft", "title": "Draft done", "offset": {"anchor": "final_deadline", "amount": -10, "unit": "day"}},
		{"id": "revise", "title": "Revision done", "offset": {"anchor": "trigger:review", "amount": 5, "unit": "day"}}
	]
}`

const brokenAnchorJSON = `{
	"id": "broken",
	"name": "Broken",
	"sub_deadlines": [
		{"id": "step", "title": "Step", "offset": {"anchor": "trigger:missing", "amount": 1, "unit": "day"}}
	]
}`

func TestStore_LoadFailsClosed(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "essay.json", validTemplateJSON)
	writeTemplate(t, dir, "broken.json", brokenAnchorJSON)
	writeTemplate(t, dir, "garbage.json", `{not json`)

	store := NewStore(dir)
	require.NoError(t, store.Load())

	// Only the valid template is usable.
	require.Len(t, store.List(), 1)
	assert.Equal(t, "essay", store.List()[0].ID)

	// Both failures are surfaced, the integrity one naming its blueprint.
	require.Len(t, store.Problems(), 2)
	var integrity *domain.TemplateIntegrityError
	found := false
	for _, p := range store.Problems() {
		if errors.As(p, &integrity) {
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, "broken", integrity.TemplateID)
	assert.Equal(t, "step", integrity.BlueprintID)
}

func TestStore_ByID(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "essay.json", validTemplateJSON)

	store := NewStore(dir)
	require.NoError(t, store.Load())

	byID, err := store.ByID("essay")
	require.NoError(t, err)
	assert.Equal(t, "Essay", byID.Name)

	byName, err := store.ByID("essay")
	require.NoError(t, err)
	assert.Same(t, byID, byName)

	caseInsensitive, err := store.ByID("ESSAY")
	require.NoError(t, err)
	assert.Same(t, byID, caseInsensitive)

	_, err = store.ByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_LoadEmptyDir(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Load())
	assert.Empty(t, store.List())
	assert.Empty(t, store.Problems())
}

func TestStore_DuplicateTemplateID(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a.json", validTemplateJSON)
	writeTemplate(t, dir, "b.json", validTemplateJSON)

	store := NewStore(dir)
	require.NoError(t, store.Load())

	assert.Len(t, store.List(), 1)
	require.Len(t, store.Problems(), 1)
}
