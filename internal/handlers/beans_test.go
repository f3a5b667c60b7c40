package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangled.org/brewguide.app/brewguide/internal/models"
)

func createTestBean(t *testing.T, h *Handler, name string) *models.Bean {
	t.Helper()

	rec := doJSON(t, h.HandleBeanCreate, http.MethodPost, "/api/beans", models.CreateBeanRequest{
		Name:       name,
		RoastLevel: "Light",
		Capacity:   250,
		RoastDate:  "2026-08-10",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var bean models.Bean
	decodeBody(t, rec, &bean)
	return &bean
}

func TestHandleBeanCreate(t *testing.T) {
	h := newTestHandler(t)

	bean := createTestBean(t, h, "Ethiopia Guji")
	assert.NotEmpty(t, bean.ID)
	assert.Equal(t, "Ethiopia Guji", bean.Name)

	// Remaining defaults to capacity for a fresh bag
	assert.Equal(t, 250.0, bean.Remaining)

	t.Run("missing name rejected", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanCreate, http.MethodPost, "/api/beans", models.CreateBeanRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanCreate, http.MethodPost, "/api/beans", "not-an-object", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleBeanGet(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Kenya Nyeri")

	rec := doJSON(t, h.HandleBeanGet, http.MethodGet, "/api/beans/"+bean.ID, nil, map[string]string{"id": bean.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Bean
	decodeBody(t, rec, &got)
	assert.Equal(t, bean.ID, got.ID)

	t.Run("missing bean", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanGet, http.MethodGet, "/api/beans/nope", nil, map[string]string{"id": "nope"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleBeanList(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.HandleBeanList, http.MethodGet, "/api/beans", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	createTestBean(t, h, "Colombia Huila")
	createTestBean(t, h, "Brazil Cerrado")

	rec = doJSON(t, h.HandleBeanList, http.MethodGet, "/api/beans", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var beans []models.Bean
	decodeBody(t, rec, &beans)
	assert.Len(t, beans, 2)
}

func TestHandleBeanUpdate(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")

	rec := doJSON(t, h.HandleBeanUpdate, http.MethodPut, "/api/beans/"+bean.ID, models.UpdateBeanRequest{
		Name:       "Ethiopia Guji Natural",
		RoastLevel: "Medium",
		Capacity:   250,
		Remaining:  200,
	}, map[string]string{"id": bean.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Bean
	decodeBody(t, rec, &got)
	assert.Equal(t, "Ethiopia Guji Natural", got.Name)
	assert.Equal(t, "Medium", got.RoastLevel)
	assert.Equal(t, 200.0, got.Remaining)
}

func TestHandleBeanDelete(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")

	rec := doJSON(t, h.HandleBeanDelete, http.MethodDelete, "/api/beans/"+bean.ID, nil, map[string]string{"id": bean.ID})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h.HandleBeanDelete, http.MethodDelete, "/api/beans/"+bean.ID, nil, map[string]string{"id": bean.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBeanDecrement(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")

	rec := doJSON(t, h.HandleBeanDecrement, http.MethodPost, "/api/beans/"+bean.ID+"/decrement",
		map[string]interface{}{"grams": 18, "text": "morning cup"}, map[string]string{"id": bean.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp beanNoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 232.0, resp.Bean.Remaining)
	require.NotNil(t, resp.Note)
	assert.Equal(t, models.SourceQuickDecrement, resp.Note.Source)

	t.Run("non-positive amount rejected", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanDecrement, http.MethodPost, "/api/beans/"+bean.ID+"/decrement",
			map[string]interface{}{"grams": 0}, map[string]string{"id": bean.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleBeanCapacity(t *testing.T) {
	h := newTestHandler(t)
	bean := createTestBean(t, h, "Ethiopia Guji")

	rec := doJSON(t, h.HandleBeanCapacity, http.MethodPost, "/api/beans/"+bean.ID+"/capacity",
		map[string]interface{}{"remaining": 100, "text": "weighed the bag"}, map[string]string{"id": bean.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp beanNoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 100.0, resp.Bean.Remaining)
	require.NotNil(t, resp.Note)
	assert.Equal(t, models.SourceCapacityAdjustment, resp.Note.Source)
	assert.Equal(t, -150.0, resp.Note.CoffeeGrams)

	t.Run("empty adjustment rejected", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanCapacity, http.MethodPost, "/api/beans/"+bean.ID+"/capacity",
			map[string]interface{}{}, map[string]string{"id": bean.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		rec := doJSON(t, h.HandleBeanCapacity, http.MethodPost, "/api/beans/"+bean.ID+"/capacity",
			map[string]interface{}{"remaining": -1}, map[string]string{"id": bean.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
