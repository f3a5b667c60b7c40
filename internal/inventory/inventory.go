// Package inventory implements bean stock management: consumption
// tracking, quick-decrement shortcuts, capacity corrections, and
// freshness reporting across the whole shelf.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"tangled.org/brewguide.app/brewguide/internal/freshness"
	"tangled.org/brewguide.app/brewguide/internal/models"
	"tangled.org/brewguide.app/brewguide/internal/units"
)

// BeanSource provides the bean operations the service needs.
type BeanSource interface {
	GetBean(ctx context.Context, id string) (*models.Bean, error)
	ListBeans(ctx context.Context) ([]*models.Bean, error)
	SaveBean(ctx context.Context, bean *models.Bean) error
}

// NoteRecorder appends entries to the brewing journal.
type NoteRecorder interface {
	CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.BrewNote, error)
}

// Service coordinates bean quantity mutations with journal writes.
type Service struct {
	beans BeanSource
	notes NoteRecorder
}

// NewService creates an inventory service.
func NewService(beans BeanSource, notes NoteRecorder) *Service {
	return &Service{beans: beans, notes: notes}
}

// QuickDecrement reduces a bean's remaining quantity by a preset
// amount (clamped at zero) and logs a quick-decrement note. Returns
// the updated bean and the note.
func (s *Service) QuickDecrement(ctx context.Context, beanID string, grams float64, text string) (*models.Bean, *models.BrewNote, error) {
	if grams <= 0 {
		return nil, nil, fmt.Errorf("decrement amount must be positive")
	}

	bean, err := s.beans.GetBean(ctx, beanID)
	if err != nil {
		return nil, nil, err
	}

	consumed := grams
	if consumed > bean.Remaining {
		consumed = bean.Remaining
	}
	bean.Remaining -= consumed

	if err := s.beans.SaveBean(ctx, bean); err != nil {
		return nil, nil, err
	}

	note, err := s.notes.CreateNote(ctx, &models.CreateNoteRequest{
		BeanID:      bean.ID,
		Source:      models.SourceQuickDecrement,
		CoffeeGrams: consumed,
		Text:        text,
	})
	if err != nil {
		// The decrement already happened; a lost journal entry is a
		// cosmetic gap, not a reason to fail the operation.
		log.Warn().Err(err).Str("bean_id", bean.ID).Msg("Failed to record quick-decrement note")
		return bean, nil, nil
	}

	return bean, note, nil
}

// AdjustCapacity sets a bean's capacity and/or remaining quantity and
// logs a capacity-adjustment note carrying the remaining-quantity
// delta. Nil fields are left unchanged.
func (s *Service) AdjustCapacity(ctx context.Context, beanID string, capacity, remaining *float64, text string) (*models.Bean, *models.BrewNote, error) {
	if capacity == nil && remaining == nil {
		return nil, nil, fmt.Errorf("nothing to adjust")
	}
	if capacity != nil && *capacity < 0 {
		return nil, nil, fmt.Errorf("capacity must not be negative")
	}
	if remaining != nil && *remaining < 0 {
		return nil, nil, fmt.Errorf("remaining must not be negative")
	}

	bean, err := s.beans.GetBean(ctx, beanID)
	if err != nil {
		return nil, nil, err
	}

	delta := 0.0
	if capacity != nil {
		bean.Capacity = *capacity
	}
	if remaining != nil {
		delta = *remaining - bean.Remaining
		bean.Remaining = *remaining
	}
	if bean.Remaining > bean.Capacity {
		bean.Capacity = bean.Remaining
	}

	if err := s.beans.SaveBean(ctx, bean); err != nil {
		return nil, nil, err
	}

	note, err := s.notes.CreateNote(ctx, &models.CreateNoteRequest{
		BeanID:      bean.ID,
		Source:      models.SourceCapacityAdjustment,
		CoffeeGrams: delta,
		Text:        text,
	})
	if err != nil {
		log.Warn().Err(err).Str("bean_id", bean.ID).Msg("Failed to record capacity-adjustment note")
		return bean, nil, nil
	}

	return bean, note, nil
}

// RecordNote writes a journal entry and, for brewing and roasting
// notes, consumes the note's coffee amount from the bean. Inventory
// adjustment notes never touch quantities here; they go through
// QuickDecrement or AdjustCapacity.
func (s *Service) RecordNote(ctx context.Context, req *models.CreateNoteRequest) (*models.BrewNote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bean, err := s.beans.GetBean(ctx, req.BeanID)
	if err != nil {
		return nil, err
	}

	if !req.Source.IsInventoryAdjustment() && req.CoffeeGrams > 0 {
		consumed := req.CoffeeGrams
		if consumed > bean.Remaining {
			consumed = bean.Remaining
		}
		bean.Remaining -= consumed
		if err := s.beans.SaveBean(ctx, bean); err != nil {
			return nil, err
		}
	}

	return s.notes.CreateNote(ctx, req)
}

// Stats summarizes the current shelf.
type Stats struct {
	BeanCount      int                     `json:"beanCount"`
	RemainingGrams float64                 `json:"remainingGrams"`
	Remaining      string                  `json:"remaining"`
	PhaseCounts    map[freshness.Phase]int `json:"phaseCounts"`
}

// Stats counts beans with stock remaining and totals their quantity.
// Empty bags are excluded, matching the client's shelf summary.
func (s *Service) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	beans, err := s.beans.ListBeans(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{PhaseCounts: make(map[freshness.Phase]int)}
	for _, bean := range beans {
		if bean.Remaining <= 0 {
			continue
		}
		stats.BeanCount++
		stats.RemainingGrams += bean.Remaining
		stats.PhaseCounts[freshness.Evaluate(*bean, now).Phase]++
	}
	stats.Remaining = units.FormatCapacity(stats.RemainingGrams)

	return stats, nil
}

// ReportEntry pairs a bean with its freshness estimate.
type ReportEntry struct {
	Bean     models.Bean        `json:"bean"`
	Estimate freshness.Estimate `json:"estimate"`
}

// Report groups in-stock beans by freshness phase. Each group is
// sorted by urgency: optimal beans closest to leaving the window
// first, resting beans closest to entering it first, fading and
// expired oldest first.
type Report struct {
	Optimal []ReportEntry `json:"optimal"`
	Resting []ReportEntry `json:"resting"`
	Fading  []ReportEntry `json:"fading"`
	Expired []ReportEntry `json:"expired"`
	Frozen  []ReportEntry `json:"frozen"`
	Other   []ReportEntry `json:"other"`
}

// FreshnessReport classifies every in-stock bean as of now.
func (s *Service) FreshnessReport(ctx context.Context, now time.Time) (*Report, error) {
	beans, err := s.beans.ListBeans(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, bean := range beans {
		if bean.Remaining <= 0 {
			continue
		}

		entry := ReportEntry{Bean: *bean, Estimate: freshness.Evaluate(*bean, now)}
		switch entry.Estimate.Phase {
		case freshness.PhaseOptimal:
			report.Optimal = append(report.Optimal, entry)
		case freshness.PhaseResting:
			report.Resting = append(report.Resting, entry)
		case freshness.PhaseFading:
			report.Fading = append(report.Fading, entry)
		case freshness.PhaseExpired:
			report.Expired = append(report.Expired, entry)
		case freshness.PhaseFrozen:
			report.Frozen = append(report.Frozen, entry)
		default:
			report.Other = append(report.Other, entry)
		}
	}

	// Optimal: fewest days left in the window first
	sort.Slice(report.Optimal, func(i, j int) bool {
		return daysLeft(report.Optimal[i]) < daysLeft(report.Optimal[j])
	})

	// Resting: closest to entering the window first
	sort.Slice(report.Resting, func(i, j int) bool {
		return daysUntilWindow(report.Resting[i]) < daysUntilWindow(report.Resting[j])
	})

	// Fading and expired: oldest roast first
	byAge := func(entries []ReportEntry) func(i, j int) bool {
		return func(i, j int) bool {
			return entries[i].Estimate.DaysSinceRoast < entries[j].Estimate.DaysSinceRoast
		}
	}
	sort.Slice(report.Fading, byAge(report.Fading))
	sort.Slice(report.Expired, byAge(report.Expired))

	return report, nil
}

func daysLeft(e ReportEntry) int {
	return e.Estimate.Window.EndDay - e.Estimate.DaysSinceRoast
}

func daysUntilWindow(e ReportEntry) int {
	return e.Estimate.Window.StartDay - e.Estimate.DaysSinceRoast
}
