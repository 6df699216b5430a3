package core

import (
	"math"

	"nuclidex/pkg/domain"
)

// Isotope cards use one cyan hue whose opacity tracks the isotopic fraction.
// Abundances inside a single element are dominated by one or two values, so a
// linear scale reads better than the element heatmap's log scale.
var isotopeHue = domain.HSLA{Hue: 188, Saturation: 86, Lightness: 53}

const (
	isotopeAlphaBase = 0.2
	isotopeAlphaGain = 0.8
	isotopeDarkAbove = 0.5
)

var isotopeAbsentFill = domain.HSLA{Hue: 0, Saturation: 0, Lightness: 100, Alpha: 0.05}

// MapIsotopeColor maps an isotopic abundance fraction to a card style.
func MapIsotopeColor(fraction float64) domain.StyleDescriptor {
	if !(fraction > 0) {
		return domain.StyleDescriptor{
			Fill:        isotopeAbsentFill,
			FillHex:     hexOf(isotopeAbsentFill),
			BorderAlpha: borderAlphaBase,
			Text:        domain.TextLight,
			Absent:      true,
		}
	}
	f := math.Min(fraction, 1)
	fill := isotopeHue
	fill.Alpha = isotopeAlphaBase + isotopeAlphaGain*f
	text := domain.TextLight
	if f > isotopeDarkAbove {
		text = domain.TextDark
	}
	return domain.StyleDescriptor{
		Fill:        fill,
		FillHex:     hexOf(fill),
		BorderAlpha: f*borderAlphaGain + borderAlphaBase,
		Text:        text,
	}
}
