package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"tangled.org/brewguide.app/brewguide/internal/database"
	"tangled.org/brewguide.app/brewguide/internal/database/boltstore"
	"tangled.org/brewguide.app/brewguide/internal/inventory"
)

// Config holds handler configuration options
type Config struct {
	// ExportFilename is the attachment name offered on journal exports
	ExportFilename string
}

// DefaultConfig returns the standard handler configuration.
func DefaultConfig() Config {
	return Config{
		ExportFilename: "brewguide-notes.json",
	}
}

// Handler contains all HTTP handler methods and their dependencies.
// Dependencies are injected via the constructor for better testability.
type Handler struct {
	store     database.Store
	notes     database.NoteStore
	settings  *boltstore.SettingsStore
	inventory *inventory.Service
	config    Config

	// now is swappable for deterministic freshness tests
	now func() time.Time
}

// NewHandler creates a new Handler with all required dependencies.
// This constructor pattern ensures the Handler is always fully initialized.
func NewHandler(store database.Store, notes database.NoteStore, settings *boltstore.SettingsStore, config Config) *Handler {
	return &Handler{
		store:     store,
		notes:     notes,
		settings:  settings,
		inventory: inventory.NewService(store, notes),
		config:    config,
		now:       time.Now,
	}
}

// SetClock overrides the handler's time source.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// requireID validates and returns an id from a path parameter.
// Returns the id if present, or writes an error response and returns
// empty string.
func requireID(w http.ResponseWriter, id string) string {
	if id == "" {
		http.Error(w, "Record id is required", http.StatusBadRequest)
		return ""
	}
	return id
}

// decodeRequest decodes a JSON request body into the target.
func decodeRequest(r *http.Request, target interface{}) error {
	return json.NewDecoder(r.Body).Decode(target)
}

// writeJSON encodes and writes a JSON response
func writeJSON(w http.ResponseWriter, v interface{}, entityName string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode " + entityName + " response")
	}
}

// handleStoreError maps storage errors to HTTP status codes.
func handleStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Error(w, message, http.StatusInternalServerError)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, "health")
}
