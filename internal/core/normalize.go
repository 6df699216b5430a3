package core

import (
	"fmt"
	"math"

	"nuclidex/pkg/domain"
)

// Intensity is a normalized abundance position in [0,1].
type Intensity float64

// NormalizationBounds holds the corpus-wide non-zero abundance range used to
// place a single abundance on a log scale. The zero value is degenerate.
// Bounds are immutable once built and safe to share between goroutines.
type NormalizationBounds struct {
	min, max       float64
	logMin, logMax float64
	degenerate     bool
}

// ComputeBounds scans the element corpus once and returns the log-scale
// bounds over its non-zero abundances.
func ComputeBounds(elements []domain.ElementRecord) NormalizationBounds {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, el := range elements {
		a := el.Abundance
		if !(a > 0) || math.IsInf(a, 0) {
			continue
		}
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	if math.IsInf(lo, 1) {
		return NormalizationBounds{degenerate: true}
	}
	return newBounds(lo, hi)
}

// NewBounds builds bounds from an explicit range. lo must be positive and
// hi must not be below it.
func NewBounds(lo, hi float64) (NormalizationBounds, error) {
	if !(lo > 0) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(hi) {
		return NormalizationBounds{degenerate: true}, fmt.Errorf("invalid normalization bounds [%g, %g]", lo, hi)
	}
	if hi < lo {
		return NormalizationBounds{degenerate: true}, fmt.Errorf("normalization max %g below min %g", hi, lo)
	}
	return newBounds(lo, hi), nil
}

func newBounds(lo, hi float64) NormalizationBounds {
	return NormalizationBounds{
		min:        lo,
		max:        hi,
		logMin:     math.Log10(lo),
		logMax:     math.Log10(hi),
		degenerate: hi == lo,
	}
}

// Min returns the smallest non-zero abundance in the corpus.
func (b NormalizationBounds) Min() float64 { return b.min }

// Max returns the largest abundance in the corpus.
func (b NormalizationBounds) Max() float64 { return b.max }

// Degenerate reports whether the range collapsed to a single value. Bounds
// without a positive maximum, including the zero value, are degenerate.
func (b NormalizationBounds) Degenerate() bool { return b.degenerate || !(b.max > 0) }

// Err returns domain.ErrDegenerateCorpus for degenerate bounds.
func (b NormalizationBounds) Err() error {
	if b.Degenerate() {
		return domain.ErrDegenerateCorpus
	}
	return nil
}

// Normalize maps an abundance onto [0,1]. The second result is false when the
// abundance is absent (zero, negative or NaN); callers then paint AbsentStyle.
func (b NormalizationBounds) Normalize(abundance float64) (Intensity, bool) {
	if !(abundance > 0) {
		return 0, false
	}
	if b.Degenerate() {
		return 1, true
	}
	switch {
	case abundance == b.min:
		return 0, true
	case abundance == b.max, math.IsInf(abundance, 1):
		return 1, true
	}
	v := (math.Log10(abundance) - b.logMin) / (b.logMax - b.logMin)
	return Intensity(clamp01(v)), true
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
