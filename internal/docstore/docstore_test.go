package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgrant/devnotes/internal/domain"
)

func newTestStore(t *testing.T) (*Store, domain.Project) {
	t.Helper()
	s := New(nil)
	p, err := s.AddProject("Sourdough Starter", domain.CategoryFormulation, "")
	require.NoError(t, err)
	return s, p
}

func TestAddProjectValidatesCategory(t *testing.T) {
	s := New(nil)

	_, err := s.AddProject("Bad", domain.Category("snacks"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	p, err := s.AddProject("Good", domain.CategoryPrototype, "")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotZero(t, p.CreatedAt)
	assert.NotNil(t, p.Reports)
	assert.NotNil(t, p.Logs)
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	s, p := newTestStore(t)

	original := s.Projects()[0]
	require.False(t, original.IsDeleted)

	require.NoError(t, s.SoftDeleteProject(p.ID))
	assert.True(t, s.Projects()[0].IsDeleted, "soft delete sets the flag")
	assert.Len(t, s.Projects(), 1, "soft delete never removes from storage")

	require.NoError(t, s.RestoreProject(p.ID))
	assert.Equal(t, original, s.Projects()[0])
}

func TestScopedItemMutationsLeaveSiblingsUntouched(t *testing.T) {
	s, p := newTestStore(t)

	r1, err := s.AddReport(p.ID, "Batch 1", "<p>ok</p>", "2026-08-01")
	require.NoError(t, err)
	r2, err := s.AddReport(p.ID, "Batch 2", "<p>better</p>", "2026-08-02")
	require.NoError(t, err)
	l1, err := s.AddLog(p.ID, "Day 1", "<p>fed starter</p>", "2026-08-01")
	require.NoError(t, err)

	require.NoError(t, s.SoftDeleteReport(p.ID, r1.ID))

	got := s.Projects()[0]
	assert.True(t, got.Reports[0].IsDeleted)
	assert.False(t, got.Reports[1].IsDeleted)
	assert.False(t, got.Logs[0].IsDeleted)

	require.NoError(t, s.RestoreReport(p.ID, r1.ID))
	assert.False(t, s.Projects()[0].Reports[0].IsDeleted)

	require.NoError(t, s.SoftDeleteLog(p.ID, l1.ID))
	got = s.Projects()[0]
	assert.True(t, got.Logs[0].IsDeleted)
	assert.False(t, got.Reports[0].IsDeleted)
	assert.Equal(t, r2.Title, got.Reports[1].Title)
}

func TestUpdateUnknownIDsReturnNotFound(t *testing.T) {
	s, p := newTestStore(t)

	assert.ErrorIs(t, s.UpdateProject(domain.Project{ID: "missing"}), domain.ErrNotFound)
	assert.ErrorIs(t, s.SoftDeleteReport(p.ID, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, s.SetLogImages(p.ID, "missing", nil), domain.ErrNotFound)
	assert.ErrorIs(t, s.SetRecipe("missing", nil), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteReport(p.ID, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteLog(p.ID, "missing"), domain.ErrNotFound)
}

func TestSetRecipeReplacesWholesale(t *testing.T) {
	s, p := newTestStore(t)

	first := &domain.Recipe{
		Name:        "Country Loaf",
		Yield:       "2 loaves",
		Ingredients: "<p>flour, water, salt</p>",
		Steps: []domain.RecipeStep{
			{ID: domain.NewID(), Text: "<p>autolyse</p>"},
			{ID: domain.NewID(), Text: "<p>bulk ferment</p>"},
		},
	}
	require.NoError(t, s.SetRecipe(p.ID, first))
	require.Len(t, s.Projects()[0].Recipe.Steps, 2)

	second := &domain.Recipe{Name: "Country Loaf v2"}
	require.NoError(t, s.SetRecipe(p.ID, second))
	got := s.Projects()[0].Recipe
	assert.Equal(t, "Country Loaf v2", got.Name)
	assert.Empty(t, got.Steps, "no partial update; the old steps are gone")
}

func TestSetImagesIsTheCanvasPersistencePath(t *testing.T) {
	s, p := newTestStore(t)
	r, err := s.AddReport(p.ID, "Batch 1", "", "2026-08-01")
	require.NoError(t, err)

	changes := 0
	s.SetOnChange(func() { changes++ })

	images := []domain.AnnotatedImage{
		{ID: domain.NewID(), URL: "data:image/png;base64,AAAA", X: 40, Y: 40, Width: 300, Height: 200},
	}
	require.NoError(t, s.SetReportImages(p.ID, r.ID, images))
	assert.Equal(t, 1, changes)
	assert.Len(t, s.Projects()[0].Reports[0].Images, 1)
}

func TestSerializeIsStable(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Serialize()
	require.NoError(t, err)
	b, err := s.Serialize()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, byte('['), a[0], "document body is a JSON array")
}

func TestReplaceDoesNotFireChangeHook(t *testing.T) {
	s, _ := newTestStore(t)
	changes := 0
	s.SetOnChange(func() { changes++ })

	s.Replace(domain.DefaultProjects())
	assert.Zero(t, changes, "a refresh must not schedule a push")
}

func TestGateRequiresConfirmation(t *testing.T) {
	s, p := newTestStore(t)
	r, err := s.AddReport(p.ID, "Batch 1", "", "2026-08-01")
	require.NoError(t, err)

	g := NewGate(s)
	assert.ErrorIs(t, g.Confirm(), ErrNothingPending)

	g.Request(Target{Kind: TargetReport, ProjectID: p.ID, ItemID: r.ID})
	require.NotNil(t, g.Pending())
	assert.Len(t, s.Projects()[0].Reports, 1, "request alone removes nothing")

	g.Cancel()
	assert.Nil(t, g.Pending())
	assert.Len(t, s.Projects()[0].Reports, 1)

	g.Request(Target{Kind: TargetReport, ProjectID: p.ID, ItemID: r.ID})
	require.NoError(t, g.Confirm())
	assert.Empty(t, s.Projects()[0].Reports)
	assert.Nil(t, g.Pending())

	// confirming a target that no longer exists must not report success
	g.Request(Target{Kind: TargetReport, ProjectID: p.ID, ItemID: r.ID})
	assert.ErrorIs(t, g.Confirm(), domain.ErrNotFound)
	assert.Nil(t, g.Pending(), "the gate disarms even when deletion fails")

	g.Request(Target{Kind: TargetProject, ProjectID: p.ID})
	require.NoError(t, g.Confirm())
	assert.Empty(t, s.Projects())
}
