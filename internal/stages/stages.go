// Package stages computes aggregate totals over brewing stage
// sequences. All functions are pure: they never fail, and malformed
// or missing fields degrade to a zero contribution.
package stages

import "tangled.org/brewguide.app/brewguide/internal/models"

// Totals holds aggregate values over a stage sequence.
type Totals struct {
	DurationSeconds int `json:"durationSeconds"`
	WaterGrams      int `json:"waterGrams"`
}

// CumulativeStage pairs a stage with the running totals up to and
// including that stage, supporting a cumulative display mode where the
// client shows running totals instead of per-stage deltas.
type CumulativeStage struct {
	Stage          models.Stage `json:"stage"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
	PouredGrams    int          `json:"pouredGrams"`
}

// Sum returns the total duration and water over a stage sequence.
// Duration excludes bypass and beverage stages; water excludes wait
// stages. Negative values contribute nothing.
func Sum(sts []models.Stage) Totals {
	var t Totals
	for _, st := range sts {
		t.DurationSeconds += stageDuration(st)
		t.WaterGrams += stageWater(st)
	}
	return t
}

// Cumulative returns the running prefix sums of duration and water in
// stage order, following the same exclusion rules as Sum. The final
// element's running totals equal Sum's result.
func Cumulative(sts []models.Stage) []CumulativeStage {
	if len(sts) == 0 {
		return nil
	}

	out := make([]CumulativeStage, len(sts))
	elapsed, poured := 0, 0
	for i, st := range sts {
		elapsed += stageDuration(st)
		poured += stageWater(st)
		out[i] = CumulativeStage{
			Stage:          st,
			ElapsedSeconds: elapsed,
			PouredGrams:    poured,
		}
	}
	return out
}

func stageDuration(st models.Stage) int {
	if !st.PourType.CountsTime() || st.Duration < 0 {
		return 0
	}
	return st.Duration
}

func stageWater(st models.Stage) int {
	if !st.PourType.CountsWater() || st.Water < 0 {
		return 0
	}
	return st.Water
}
