package core

import (
	"fmt"
	"math"
)

// Unit thresholds for half-life display, in seconds. Each threshold is
// inclusive: exactly one hour renders as "1.00 h".
const (
	SecondsPerMinute = 60.0
	SecondsPerHour   = 3600.0
	SecondsPerDay    = 86400.0
	SecondsPerYear   = 3.154e7

	// Year counts at or above this switch to exponential notation.
	fixedYearLimit = 1000.0
)

// FormatHalfLife renders a positive half-life using the largest unit that
// keeps the number human-scale.
func FormatHalfLife(seconds float64) string {
	switch {
	case seconds >= SecondsPerYear:
		years := seconds / SecondsPerYear
		if years < fixedYearLimit {
			return fmt.Sprintf("%.2f y", years)
		}
		return fmt.Sprintf("%.2e y", years)
	case seconds >= SecondsPerDay:
		return fmt.Sprintf("%.2f d", seconds/SecondsPerDay)
	case seconds >= SecondsPerHour:
		return fmt.Sprintf("%.2f h", seconds/SecondsPerHour)
	case seconds >= SecondsPerMinute:
		return fmt.Sprintf("%.2f m", seconds/SecondsPerMinute)
	default:
		return fmt.Sprintf("%.2e s", seconds)
	}
}

// DecayConstant returns λ = ln 2 / t½ in s⁻¹.
func DecayConstant(halfLifeSeconds float64) float64 {
	return math.Ln2 / halfLifeSeconds
}

// FormatDecayConstant renders λ for a half-life in exponential notation.
func FormatDecayConstant(halfLifeSeconds float64) string {
	return fmt.Sprintf("%.2e s⁻¹", DecayConstant(halfLifeSeconds))
}
