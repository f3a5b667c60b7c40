// Package units parses and formats quantity strings carrying unit
// suffixes ("18g", "1:15", "92°C") and reconciles the dependent pair
// of coffee mass and brew ratio into stage-level water amounts.
//
// Parsing never fails: a malformed numeric string is treated as zero,
// since the worst-case outcome is a cosmetic miscalculation on the
// client, not data loss.
package units

import (
	"math"
	"strconv"
	"strings"

	"tangled.org/brewguide.app/brewguide/internal/models"
)

// ParseGrams parses a gram quantity string. The "g" suffix is optional.
func ParseGrams(s string) float64 {
	return parseNumber(strings.TrimSuffix(strings.TrimSpace(s), "g"))
}

// FormatGrams formats a gram quantity, always appending the suffix.
func FormatGrams(v float64) string {
	return formatNumber(v) + "g"
}

// ParseCelsius parses a temperature string. The "°C" suffix (or a bare
// "°") is optional.
func ParseCelsius(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "°C")
	s = strings.TrimSuffix(s, "°")
	return parseNumber(s)
}

// FormatCelsius formats a temperature, always appending the suffix.
func FormatCelsius(v float64) string {
	return formatNumber(v) + "°C"
}

// ParseRatio parses a brew ratio string and returns the water part.
// Accepts "1:15" or a bare "15".
func ParseRatio(s string) float64 {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	return parseNumber(s)
}

// FormatRatio formats a brew ratio in "1:N" form.
func FormatRatio(v float64) string {
	return "1:" + formatNumber(v)
}

// DeriveWater computes the total brew water in grams from coffee mass
// and ratio, rounded to the nearest gram.
func DeriveWater(coffeeGrams, ratio float64) int {
	if coffeeGrams <= 0 || ratio <= 0 {
		return 0
	}
	return int(math.Round(coffeeGrams * ratio))
}

// Redistribute scales stage water amounts so that the non-bypass total
// matches newTotal, preserving each stage's proportion of the old
// total. Bypass stages are never auto-adjusted and are excluded from
// both totals. If the old total is zero the ratio is undefined and the
// stages are returned unchanged.
//
// The input slice is not mutated; a new slice is returned.
func Redistribute(sts []models.Stage, newTotal int) []models.Stage {
	out := make([]models.Stage, len(sts))
	copy(out, sts)

	oldTotal := 0
	for _, st := range sts {
		if st.PourType == models.PourBypass || !st.PourType.CountsWater() {
			continue
		}
		if st.Water > 0 {
			oldTotal += st.Water
		}
	}
	if oldTotal == 0 {
		return out
	}

	scale := float64(newTotal) / float64(oldTotal)
	for i := range out {
		st := &out[i]
		if st.PourType == models.PourBypass || !st.PourType.CountsWater() || st.Water <= 0 {
			continue
		}
		st.Water = int(math.Round(float64(st.Water) * scale))
	}
	return out
}

// FormatCapacity formats an inventory quantity for display, switching
// to kilograms at 1000g.
func FormatCapacity(grams float64) string {
	if grams >= 1000 {
		return strconv.FormatFloat(grams/1000, 'f', 2, 64) + "kg"
	}
	return strconv.Itoa(int(grams)) + "g"
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
