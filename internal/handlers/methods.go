package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"tangled.org/brewguide.app/brewguide/internal/metrics"
	"tangled.org/brewguide.app/brewguide/internal/models"
	"tangled.org/brewguide.app/brewguide/internal/stages"
	"tangled.org/brewguide.app/brewguide/internal/units"
)

// List all saved methods
func (h *Handler) HandleMethodList(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListMethods(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list methods")
		http.Error(w, "Failed to list methods", http.StatusInternalServerError)
		return
	}
	if methods == nil {
		methods = []*models.Method{}
	}
	writeJSON(w, methods, "methods")
}

// Create a method. Totals are recomputed from the stages server-side.
func (h *Handler) HandleMethodCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMethodRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode method create request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("Method create validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := h.store.CreateMethod(r.Context(), methodFromRequest(&req))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create method")
		http.Error(w, "Failed to create method", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, method, "method")
}

// Get a single method
func (h *Handler) HandleMethodGet(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	method, err := h.store.GetMethod(r.Context(), id)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch method")
		return
	}
	writeJSON(w, method, "method")
}

// Update a method in place
func (h *Handler) HandleMethodUpdate(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req models.UpdateMethodRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode method update request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Method update validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := h.store.UpdateMethod(r.Context(), id, methodFromRequest(&req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to update method")
		handleStoreError(w, err, "Failed to update method")
		return
	}
	writeJSON(w, method, "method")
}

// Delete a method
func (h *Handler) HandleMethodDelete(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	if err := h.store.DeleteMethod(r.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete method")
		handleStoreError(w, err, "Failed to delete method")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// methodFromRequest builds a Method from a validated request, filling
// in the derived totals.
func methodFromRequest(req *models.CreateMethodRequest) *models.Method {
	totals := stages.Sum(req.Stages)
	return &models.Method{
		Name:         req.Name,
		Equipment:    req.Equipment,
		CoffeeGrams:  req.CoffeeGrams,
		Ratio:        req.Ratio,
		GrindSize:    req.GrindSize,
		Temperature:  req.Temperature,
		Stages:       req.Stages,
		TotalSeconds: totals.DurationSeconds,
		TotalWater:   totals.WaterGrams,
	}
}

// calculateRequest carries recipe parameters as the client records them:
// quantity strings with optional unit suffixes plus a stage list.
type calculateRequest struct {
	Coffee      string         `json:"coffee"`
	Ratio       string         `json:"ratio"`
	Temperature string         `json:"temperature"`
	Stages      []models.Stage `json:"stages"`
}

type calculateResponse struct {
	CoffeeGrams float64                  `json:"coffeeGrams"`
	Coffee      string                   `json:"coffee"`
	Ratio       float64                  `json:"ratio"`
	RatioText   string                   `json:"ratioText"`
	Temperature string                   `json:"temperature,omitempty"`
	TargetWater int                      `json:"targetWater"`
	Totals      stages.Totals            `json:"totals"`
	Cumulative  []stages.CumulativeStage `json:"cumulative,omitempty"`

	// Rescaled is present when the stage water total differs from the
	// target derived from coffee and ratio.
	Rescaled []models.Stage `json:"rescaled,omitempty"`
}

// Calculate totals for a recipe without saving anything. Quantity
// strings are coerced leniently: malformed numbers count as zero.
func (h *Handler) HandleMethodCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode calculate request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	coffee := units.ParseGrams(req.Coffee)
	ratio := units.ParseRatio(req.Ratio)
	target := units.DeriveWater(coffee, ratio)
	totals := stages.Sum(req.Stages)

	resp := calculateResponse{
		CoffeeGrams: coffee,
		Coffee:      units.FormatGrams(coffee),
		Ratio:       ratio,
		RatioText:   units.FormatRatio(ratio),
		TargetWater: target,
		Totals:      totals,
		Cumulative:  stages.Cumulative(req.Stages),
	}
	if req.Temperature != "" {
		resp.Temperature = units.FormatCelsius(units.ParseCelsius(req.Temperature))
	}
	if target > 0 && totals.WaterGrams != target {
		resp.Rescaled = units.Redistribute(req.Stages, target)
	}

	writeJSON(w, resp, "calculation")
}

type rescaleRequest struct {
	CoffeeGrams float64 `json:"coffeeGrams"`
	Ratio       float64 `json:"ratio"`

	// TotalWater overrides the derived target when set.
	TotalWater int `json:"totalWater"`
}

// Rescale a saved method's stage water to a new coffee dose or ratio,
// preserving each stage's proportion. Bypass stages are left alone.
func (h *Handler) HandleMethodRescale(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req rescaleRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode rescale request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	method, err := h.store.GetMethod(r.Context(), id)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch method")
		return
	}

	if req.CoffeeGrams > 0 {
		method.CoffeeGrams = req.CoffeeGrams
	}
	if req.Ratio > 0 {
		method.Ratio = req.Ratio
	}

	target := req.TotalWater
	if target <= 0 {
		target = units.DeriveWater(method.CoffeeGrams, method.Ratio)
	}
	if target <= 0 {
		http.Error(w, "Nothing to rescale to: no water target", http.StatusBadRequest)
		return
	}

	method.Stages = units.Redistribute(method.Stages, target)
	totals := stages.Sum(method.Stages)
	method.TotalSeconds = totals.DurationSeconds
	method.TotalWater = totals.WaterGrams

	updated, err := h.store.UpdateMethod(r.Context(), id, method)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to save rescaled method")
		handleStoreError(w, err, "Failed to save rescaled method")
		return
	}

	metrics.MethodRescalesTotal.Inc()
	writeJSON(w, updated, "method")
}
