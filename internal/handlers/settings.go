package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// List stored settings keys
func (h *Handler) HandleSettingsKeys(w http.ResponseWriter, r *http.Request) {
	keys := h.settings.Keys()
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, map[string][]string{"keys": keys}, "settings keys")
}

// Get a settings blob by key
func (h *Handler) HandleSettingsGet(w http.ResponseWriter, r *http.Request) {
	key := requireID(w, r.PathValue("key"))
	if key == "" {
		return
	}

	value, err := h.settings.Get(key)
	if err != nil {
		handleStoreError(w, err, "Failed to fetch settings")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write settings response")
	}
}

// Put a settings blob by key. The value is opaque JSON; the only
// requirement is that it parses.
func (h *Handler) HandleSettingsPut(w http.ResponseWriter, r *http.Request) {
	key := requireID(w, r.PathValue("key"))
	if key == "" {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		http.Error(w, "Settings value must be valid JSON", http.StatusBadRequest)
		return
	}

	if err := h.settings.Put(key, body); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store settings")
		http.Error(w, "Failed to store settings", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete a settings blob. Deleting a missing key succeeds.
func (h *Handler) HandleSettingsDelete(w http.ResponseWriter, r *http.Request) {
	key := requireID(w, r.PathValue("key"))
	if key == "" {
		return
	}

	if err := h.settings.Delete(key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to delete settings")
		http.Error(w, "Failed to delete settings", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
