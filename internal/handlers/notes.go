package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"tangled.org/brewguide.app/brewguide/internal/database"
	"tangled.org/brewguide.app/brewguide/internal/metrics"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

// noteSourceLabel returns a stable metric label for a note source.
func noteSourceLabel(s models.NoteSource) string {
	if s == models.SourceBrewing {
		return "brewing"
	}
	return string(s)
}

// noteFilterFromQuery builds a NoteFilter from list query parameters.
func noteFilterFromQuery(r *http.Request) (database.NoteFilter, error) {
	q := r.URL.Query()
	filter := database.NoteFilter{BeanID: q.Get("beanId")}

	if raw, ok := q["source"]; ok && len(raw) > 0 {
		source := models.NoteSource(raw[0])
		filter.Source = &source
	}
	if s := q.Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, err
		}
		filter.Since = t
	}
	if s := q.Get("until"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, err
		}
		filter.Until = t
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return filter, err
		}
		if n > 0 {
			filter.Limit = n
		}
	}
	return filter, nil
}

// List journal entries, newest first
func (h *Handler) HandleNoteList(w http.ResponseWriter, r *http.Request) {
	filter, err := noteFilterFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid filter parameters", http.StatusBadRequest)
		return
	}

	notes, err := h.notes.ListNotes(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notes")
		http.Error(w, "Failed to list notes", http.StatusInternalServerError)
		return
	}
	if notes == nil {
		notes = []*models.BrewNote{}
	}
	writeJSON(w, notes, "notes")
}

// Create a journal entry. Brewing and roasting notes consume the
// note's coffee amount from the bean.
func (h *Handler) HandleNoteCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode note create request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("bean_id", req.BeanID).Msg("Note create validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	note, err := h.inventory.RecordNote(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("bean_id", req.BeanID).Msg("Failed to create note")
		handleStoreError(w, err, "Failed to create note")
		return
	}

	metrics.NotesCreatedTotal.WithLabelValues(noteSourceLabel(note.Source)).Inc()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, note, "note")
}

// Get a single journal entry
func (h *Handler) HandleNoteGet(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch note")
		return
	}
	writeJSON(w, note, "note")
}

type updateNoteRequest struct {
	Text string `json:"text"`
}

// Update a journal entry's text. Everything else is immutable.
func (h *Handler) HandleNoteUpdate(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	var req updateNoteRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Failed to decode note update request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.notes.UpdateNoteText(r.Context(), id, req.Text); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to update note")
		handleStoreError(w, err, "Failed to update note")
		return
	}

	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch note")
		return
	}
	writeJSON(w, note, "note")
}

// Delete a journal entry
func (h *Handler) HandleNoteDelete(w http.ResponseWriter, r *http.Request) {
	id := requireID(w, r.PathValue("id"))
	if id == "" {
		return
	}

	if err := h.notes.DeleteNote(r.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete note")
		handleStoreError(w, err, "Failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export the journal as downloadable JSON. Accepts the same filter
// parameters as the list endpoint.
func (h *Handler) HandleNoteExport(w http.ResponseWriter, r *http.Request) {
	filter, err := noteFilterFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid filter parameters", http.StatusBadRequest)
		return
	}

	notes, err := h.notes.ListNotes(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notes for export")
		http.Error(w, "Failed to fetch notes", http.StatusInternalServerError)
		return
	}
	if notes == nil {
		notes = []*models.BrewNote{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+h.config.ExportFilename)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(notes); err != nil {
		log.Error().Err(err).Msg("Failed to encode notes for export")
	}
}
