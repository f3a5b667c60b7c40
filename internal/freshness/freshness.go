// Package freshness estimates where a bean sits in its flavor window.
//
// The window is a day range [StartDay, EndDay] after the roast date.
// Before StartDay the bean is still degassing ("resting"); between
// StartDay and EndDay it is at its best; past EndDay flavor fades for
// a grace period before the bean counts as expired.
package freshness

import (
	"time"

	"tangled.org/brewguide.app/brewguide/internal/models"
)

// Phase is the categorical freshness status of a bean.
type Phase string

const (
	PhaseResting   Phase = "resting"
	PhaseOptimal   Phase = "optimal"
	PhaseFading    Phase = "fading"
	PhaseExpired   Phase = "expired"
	PhaseFrozen    Phase = "frozen"
	PhaseInTransit Phase = "in_transit"
	PhaseUnknown   Phase = "unknown"
)

// fadingGraceDays is how long past EndDay a bean stays drinkable
// before it counts as expired.
const fadingGraceDays = 14

// Window is the day range after roasting during which a bean is in
// optimal flavor condition.
type Window struct {
	StartDay int `json:"startDay"`
	EndDay   int `json:"endDay"`
}

// defaultWindow applies when neither the bean nor its roast level
// provides one.
var defaultWindow = Window{StartDay: 7, EndDay: 30}

// roastWindows maps roast levels to their default flavor windows.
// Lighter roasts degas slower and keep longer.
var roastWindows = map[string]Window{
	"Ultra-Light":  {StartDay: 10, EndDay: 60},
	"Light":        {StartDay: 7, EndDay: 45},
	"Medium-Light": {StartDay: 7, EndDay: 40},
	"Medium":       {StartDay: 5, EndDay: 30},
	"Medium-Dark":  {StartDay: 3, EndDay: 21},
	"Dark":         {StartDay: 2, EndDay: 14},
}

// WindowForRoastLevel returns the default flavor window for a roast
// level, falling back to the global default for unknown levels.
func WindowForRoastLevel(level string) Window {
	if w, ok := roastWindows[level]; ok {
		return w
	}
	return defaultWindow
}

// WindowForBean resolves the flavor window for a bean: per-bean
// overrides first, then the roast level default.
func WindowForBean(bean models.Bean) Window {
	w := WindowForRoastLevel(bean.RoastLevel)
	if bean.StartDay > 0 {
		w.StartDay = bean.StartDay
	}
	if bean.EndDay > 0 {
		w.EndDay = bean.EndDay
	}
	return w
}

// Estimate is the computed freshness state of a bean.
type Estimate struct {
	Phase           Phase   `json:"phase"`
	DaysSinceRoast  int     `json:"daysSinceRoast"`
	Window          Window  `json:"window"`
	ProgressPercent float64 `json:"progressPercent"`
}

// InWindow reports whether the bean is currently at optimal flavor.
func (e Estimate) InWindow() bool { return e.Phase == PhaseOptimal }

// PastWindow reports whether the bean is past its flavor window,
// fading or expired.
func (e Estimate) PastWindow() bool {
	return e.Phase == PhaseFading || e.Phase == PhaseExpired
}

// DaysBetween returns the calendar-day difference between two times,
// ignoring the time of day. A roast at 23:59 yesterday is one day ago
// even if fewer than 24 hours have elapsed.
func DaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// Evaluate classifies a bean's freshness as of now.
//
// Frozen and in-transit beans bypass classification and report a fixed
// phase. A missing or unparseable roast date, or a still-green bean,
// yields PhaseUnknown rather than an error.
func Evaluate(bean models.Bean, now time.Time) Estimate {
	window := WindowForBean(bean)

	if bean.IsFrozen {
		return Estimate{Phase: PhaseFrozen, Window: window}
	}
	if bean.IsInTransit {
		return Estimate{Phase: PhaseInTransit, Window: window}
	}
	if bean.RoastState == models.RoastStateGreen || bean.RoastDate == "" {
		return Estimate{Phase: PhaseUnknown, Window: window}
	}

	roasted, err := time.Parse("2006-01-02", bean.RoastDate)
	if err != nil {
		return Estimate{Phase: PhaseUnknown, Window: window}
	}

	days := DaysBetween(roasted, now)

	var phase Phase
	switch {
	case days < window.StartDay:
		phase = PhaseResting
	case days <= window.EndDay:
		phase = PhaseOptimal
	case days <= window.EndDay+fadingGraceDays:
		phase = PhaseFading
	default:
		phase = PhaseExpired
	}

	return Estimate{
		Phase:           phase,
		DaysSinceRoast:  days,
		Window:          window,
		ProgressPercent: progress(days, window, phase),
	}
}

// progress maps days-since-roast onto a 0-100 position within the
// optimal window: 0 before StartDay, 100 at or past EndDay.
func progress(days int, w Window, phase Phase) float64 {
	if days > w.EndDay {
		return 100
	}
	if phase != PhaseOptimal {
		return 0
	}
	span := float64(w.EndDay - w.StartDay)
	if span <= 0 {
		return 100
	}
	p := float64(days-w.StartDay) / span * 100
	return min(max(p, 0), 100)
}
