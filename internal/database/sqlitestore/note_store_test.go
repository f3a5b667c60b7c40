package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangled.org/brewguide.app/brewguide/internal/database"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

func setupTestNoteStore(t *testing.T) *NoteStore {
	db, err := Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	store := NewNoteStore(db)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func noteRequest(beanID string, source models.NoteSource) *models.CreateNoteRequest {
	return &models.CreateNoteRequest{
		BeanID:      beanID,
		Source:      source,
		CoffeeGrams: 18,
		WaterGrams:  270,
		Ratio:       15,
		MethodName:  "V60 4:6",
		Rating:      8,
		Text:        "floral, long finish",
	}
}

func TestNoteStore_CreateAndGet(t *testing.T) {
	store := setupTestNoteStore(t)
	ctx := context.Background()

	created, err := store.CreateNote(ctx, noteRequest("bean-1", models.SourceBrewing))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.BeanID, got.BeanID)
	assert.Equal(t, created.Source, got.Source)
	assert.Equal(t, created.CoffeeGrams, got.CoffeeGrams)
	assert.Equal(t, created.Text, got.Text)
}

func TestNoteStore_Get_Missing(t *testing.T) {
	store := setupTestNoteStore(t)

	_, err := store.GetNote(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestNoteStore_List(t *testing.T) {
	store := setupTestNoteStore(t)
	ctx := context.Background()

	_, err := store.CreateNote(ctx, noteRequest("bean-1", models.SourceBrewing))
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, noteRequest("bean-1", models.SourceQuickDecrement))
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, noteRequest("bean-2", models.SourceBrewing))
	require.NoError(t, err)

	t.Run("no filter returns all", func(t *testing.T) {
		notes, err := store.ListNotes(ctx, database.NoteFilter{})
		require.NoError(t, err)
		assert.Len(t, notes, 3)
	})

	t.Run("filter by bean", func(t *testing.T) {
		notes, err := store.ListNotes(ctx, database.NoteFilter{BeanID: "bean-1"})
		require.NoError(t, err)
		assert.Len(t, notes, 2)
	})

	t.Run("filter by source", func(t *testing.T) {
		source := models.SourceQuickDecrement
		notes, err := store.ListNotes(ctx, database.NoteFilter{Source: &source})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, models.SourceQuickDecrement, notes[0].Source)
	})

	t.Run("filter by default brewing source", func(t *testing.T) {
		source := models.SourceBrewing
		notes, err := store.ListNotes(ctx, database.NoteFilter{Source: &source})
		require.NoError(t, err)
		assert.Len(t, notes, 2)
	})

	t.Run("limit", func(t *testing.T) {
		notes, err := store.ListNotes(ctx, database.NoteFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})
}

func TestNoteStore_UpdateText(t *testing.T) {
	store := setupTestNoteStore(t)
	ctx := context.Background()

	created, err := store.CreateNote(ctx, noteRequest("bean-1", models.SourceBrewing))
	require.NoError(t, err)

	require.NoError(t, store.UpdateNoteText(ctx, created.ID, "revised: muted acidity"))

	got, err := store.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised: muted acidity", got.Text)

	// Everything else is immutable
	assert.Equal(t, created.Rating, got.Rating)
	assert.Equal(t, created.CoffeeGrams, got.CoffeeGrams)

	t.Run("missing note", func(t *testing.T) {
		assert.ErrorIs(t, store.UpdateNoteText(ctx, "no-such-id", "x"), database.ErrNotFound)
	})
}

func TestNoteStore_Delete(t *testing.T) {
	store := setupTestNoteStore(t)
	ctx := context.Background()

	created, err := store.CreateNote(ctx, noteRequest("bean-1", models.SourceBrewing))
	require.NoError(t, err)

	require.NoError(t, store.DeleteNote(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteNote(ctx, created.ID), database.ErrNotFound)
}

func TestNoteStore_Counts(t *testing.T) {
	store := setupTestNoteStore(t)
	ctx := context.Background()

	count, err := store.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.CreateNote(ctx, noteRequest("bean-1", models.SourceBrewing))
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, noteRequest("bean-1", models.SourceQuickDecrement))
	require.NoError(t, err)
	_, err = store.CreateNote(ctx, noteRequest("bean-1", models.SourceQuickDecrement))
	require.NoError(t, err)

	count, err = store.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	bySource, err := store.CountNotesBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bySource[models.SourceBrewing])
	assert.Equal(t, 2, bySource[models.SourceQuickDecrement])
}
