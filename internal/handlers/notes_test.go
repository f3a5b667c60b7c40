package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangled.org/brewguide.app/brewguide/internal/models"
)

func createTestNote(t *testing.T, h *Handler, beanID string) *models.BrewNote {
	t.Helper()

	rec := doJSON(t, h.HandleNoteCreate, http.MethodPost, "/api/notes", models.CreateNoteRequest{
		BeanID:      beanID,
		CoffeeGrams: 18,
		WaterGrams:  270,
		Ratio:       15,
		MethodName:  "V60 4:6",
		Rating:      8,
		Text:        "floral, long finish",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var note models.BrewNote
	decodeBody(t, rec, &note)
	return &note
}

func TestHandleNoteCreate(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")

	note := createTestNote(t, h, bean.ID)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, bean.ID, note.BeanID)

	// A brewing note consumes its coffee amount from the bean
	rec := doJSON(t, h.HandleBeanGet, http.MethodGet, "/api/beans/"+bean.ID, nil, map[string]string{"id": bean.ID})
	var got models.Bean
	decodeBody(t, rec, &got)
	assert.Equal(t, 232.0, got.Remaining)

	t.Run("missing bean", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteCreate, http.MethodPost, "/api/notes", models.CreateNoteRequest{
			BeanID: "nope",
		}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid source", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteCreate, http.MethodPost, "/api/notes", models.CreateNoteRequest{
			BeanID: bean.ID,
			Source: "mystery",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleNoteList(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")
	other := createTestBean(t, h, "Kenya Nyeri")

	createTestNote(t, h, bean.ID)
	createTestNote(t, h, bean.ID)
	createTestNote(t, h, other.ID)

	t.Run("all notes", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteList, http.MethodGet, "/api/notes", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var notes []models.BrewNote
		decodeBody(t, rec, &notes)
		assert.Len(t, notes, 3)
	})

	t.Run("filter by bean", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteList, http.MethodGet, "/api/notes?beanId="+bean.ID, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var notes []models.BrewNote
		decodeBody(t, rec, &notes)
		assert.Len(t, notes, 2)
	})

	t.Run("limit", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteList, http.MethodGet, "/api/notes?limit=1", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var notes []models.BrewNote
		decodeBody(t, rec, &notes)
		assert.Len(t, notes, 1)
	})

	t.Run("bad since parameter", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteList, http.MethodGet, "/api/notes?since=yesterday", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleNoteUpdate(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")
	note := createTestNote(t, h, bean.ID)

	rec := doJSON(t, h.HandleNoteUpdate, http.MethodPatch, "/api/notes/"+note.ID,
		map[string]string{"text": "revised: muted acidity"}, map[string]string{"id": note.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.BrewNote
	decodeBody(t, rec, &updated)
	assert.Equal(t, "revised: muted acidity", updated.Text)
	assert.Equal(t, note.Rating, updated.Rating)

	t.Run("missing note", func(t *testing.T) {
		rec := doJSON(t, h.HandleNoteUpdate, http.MethodPatch, "/api/notes/nope",
			map[string]string{"text": "x"}, map[string]string{"id": "nope"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleNoteDelete(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")
	note := createTestNote(t, h, bean.ID)

	rec := doJSON(t, h.HandleNoteDelete, http.MethodDelete, "/api/notes/"+note.ID, nil, map[string]string{"id": note.ID})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h.HandleNoteDelete, http.MethodDelete, "/api/notes/"+note.ID, nil, map[string]string{"id": note.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleNoteExport(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")
	createTestNote(t, h, bean.ID)

	rec := doJSON(t, h.HandleNoteExport, http.MethodGet, "/api/notes/export", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=brewguide-notes.json", rec.Header().Get("Content-Disposition"))

	var notes []models.BrewNote
	decodeBody(t, rec, &notes)
	assert.Len(t, notes, 1)
}
