package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"tangled.org/brewguide.app/brewguide/internal/metrics"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

// List all beans, newest first
func (h *Handler) HandleBeanList(w http.ResponseWriter, r *http.Request) {
	beans, err := h.store.ListBeans(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list beans")
		http.Error(w, "Failed to list beans", http.StatusInternalServerError)
		return
	}
	if beans == nil {
		beans = []*models.Bean{}
	}
	writeJSON(w, beans, "beans")
}

// Create a bean
func (h *Handler) HandleBeanCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBeanRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode bean create request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("Bean create validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bean, err := h.store.CreateBean(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create bean")
		http.Error(w, "Failed to create bean", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, bean, "bean")
}

// Get a single bean
func (h *Handler) HandleBeanGet(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	bean, err := h.store.GetBean(r.Context(), id)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch bean")
		return
	}
	writeJSON(w, bean, "bean")
}

// Update a bean in place
func (h *Handler) HandleBeanUpdate(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req models.UpdateBeanRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode bean update request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Bean update validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bean, err := h.store.UpdateBean(r.Context(), id, &req)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to update bean")
		handleStoreError(w, err, "Failed to update bean")
		return
	}
	writeJSON(w, bean, "bean")
}

// Delete a bean
func (h *Handler) HandleBeanDelete(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	if err := h.store.DeleteBean(r.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete bean")
		handleStoreError(w, err, "Failed to delete bean")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type decrementRequest struct {
	Grams float64 `json:"grams"`
	Text  string  `json:"text"`
}

type beanNoteResponse struct {
	Bean *models.Bean     `json:"bean"`
	Note *models.BrewNote `json:"note,omitempty"`
}

// Quick-decrement a bean's remaining quantity
func (h *Handler) HandleBeanDecrement(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req decrementRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode decrement request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Grams <= 0 {
		http.Error(w, "Decrement amount must be positive", http.StatusBadRequest)
		return
	}

	bean, note, err := h.inventory.QuickDecrement(r.Context(), id, req.Grams, req.Text)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to decrement bean")
		handleStoreError(w, err, "Failed to decrement bean")
		return
	}

	metrics.QuickDecrementsTotal.Inc()
	writeJSON(w, beanNoteResponse{Bean: bean, Note: note}, "decrement")
}

type capacityRequest struct {
	Capacity  *float64 `json:"capacity"`
	Remaining *float64 `json:"remaining"`
	Text      string   `json:"text"`
}

// Adjust a bean's capacity and/or remaining quantity
func (h *Handler) HandleBeanCapacity(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req capacityRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode capacity request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Capacity == nil && req.Remaining == nil {
		http.Error(w, "Nothing to adjust", http.StatusBadRequest)
		return
	}
	if (req.Capacity != nil && *req.Capacity < 0) || (req.Remaining != nil && *req.Remaining < 0) {
		http.Error(w, "Quantities must not be negative", http.StatusBadRequest)
		return
	}

	bean, note, err := h.inventory.AdjustCapacity(r.Context(), id, req.Capacity, req.Remaining, req.Text)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to adjust bean capacity")
		handleStoreError(w, err, "Failed to adjust bean capacity")
		return
	}

	metrics.CapacityAdjustmentsTotal.Inc()
	writeJSON(w, beanNoteResponse{Bean: bean, Note: note}, "capacity")
}
