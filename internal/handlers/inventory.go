package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tangled.org/brewguide.app/brewguide/internal/inventory"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

type statsResponse struct {
	*inventory.Stats
	NoteCount     int                       `json:"noteCount"`
	NotesBySource map[models.NoteSource]int `json:"notesBySource"`
}

// Shelf summary: bean counts, remaining quantity, freshness phase
// breakdown, and journal totals. Inventory and journal queries run
// concurrently since they hit separate stores.
func (h *Handler) HandleInventoryStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		stats         *inventory.Stats
		noteCount     int
		notesBySource map[models.NoteSource]int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = h.inventory.Stats(ctx, h.now())
		return err
	})
	g.Go(func() error {
		var err error
		noteCount, err = h.notes.CountNotes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		notesBySource, err = h.notes.CountNotesBySource(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Failed to gather inventory stats")
		http.Error(w, "Failed to gather stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, statsResponse{
		Stats:         stats,
		NoteCount:     noteCount,
		NotesBySource: notesBySource,
	}, "stats")
}

// Freshness report: every in-stock bean classified by phase, each
// group sorted by urgency.
func (h *Handler) HandleFreshnessReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.inventory.FreshnessReport(r.Context(), h.now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build freshness report")
		http.Error(w, "Failed to build freshness report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report, "freshness")
}
