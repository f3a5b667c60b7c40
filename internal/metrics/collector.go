package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StatsSource provides functions to retrieve current counts for gauge metrics.
// Nil functions are skipped.
type StatsSource struct {
	BeanCount      func() int
	RemainingGrams func() float64
	BeansByPhase   func() map[string]int
	NoteCount      func() int
	MethodCount    func() int
}

// StartCollector launches a goroutine that periodically updates gauge metrics.
// It runs every interval until the context is cancelled.
func StartCollector(ctx context.Context, src StatsSource, interval time.Duration) {
	// Do an initial collection immediately
	collect(src)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collect(src)
			}
		}
	}()

	log.Info().Dur("interval", interval).Msg("Metrics collector started")
}

func collect(src StatsSource) {
	if src.BeanCount != nil {
		BeansInStock.Set(float64(src.BeanCount()))
	}
	if src.RemainingGrams != nil {
		RemainingGramsTotal.Set(src.RemainingGrams())
	}
	if src.BeansByPhase != nil {
		for phase, count := range src.BeansByPhase() {
			BeansByPhase.WithLabelValues(phase).Set(float64(count))
		}
	}
	if src.NoteCount != nil {
		NotesTotal.Set(float64(src.NoteCount()))
	}
	if src.MethodCount != nil {
		MethodsTotal.Set(float64(src.MethodCount()))
	}
}
