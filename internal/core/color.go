package core

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"nuclidex/pkg/domain"
)

// Heatmap scale tuning. The first half runs blue to cyan while brightening,
// the second half runs cyan to gold at full opacity.
const (
	glowThreshold   = 0.6
	glowScale       = 25.0
	shadowFactor    = 1.5
	darkTextAbove   = 0.7
	borderAlphaBase = 0.1
	borderAlphaGain = 0.5
)

var absentFill = domain.HSLA{Hue: 0, Saturation: 0, Lightness: 100, Alpha: 0.05}

// MapColor converts a normalized intensity into a cell style using piecewise
// HSL interpolation. Intensities outside [0,1] are clamped.
func MapColor(intensity Intensity) domain.StyleDescriptor {
	i := clamp01(float64(intensity))

	var fill domain.HSLA
	if i < 0.5 {
		t := i * 2
		fill = domain.HSLA{
			Hue:        220 - 40*t,
			Saturation: 30 + 70*t,
			Lightness:  20 + 30*t,
			Alpha:      0.3 + 0.7*t,
		}
	} else {
		t := (i - 0.5) * 2
		fill = domain.HSLA{
			Hue:        180 - 140*t,
			Saturation: 100,
			Lightness:  50 + 50*t,
			Alpha:      1,
		}
	}

	glow := 0.0
	if i > glowThreshold {
		glow = (i - glowThreshold) * glowScale
	}
	text := domain.TextLight
	if i > darkTextAbove {
		text = domain.TextDark
	}
	return domain.StyleDescriptor{
		Fill:        fill,
		FillHex:     hexOf(fill),
		Glow:        glow,
		Shadow:      glow * shadowFactor,
		BorderAlpha: i*borderAlphaGain + borderAlphaBase,
		Text:        text,
	}
}

// AbsentStyle is painted for elements that do not occur naturally.
func AbsentStyle() domain.StyleDescriptor {
	return domain.StyleDescriptor{
		Fill:        absentFill,
		FillHex:     hexOf(absentFill),
		BorderAlpha: borderAlphaBase,
		Text:        domain.TextLight,
		Absent:      true,
	}
}

// StyleFor normalizes an abundance against bounds and maps it to a style,
// falling back to AbsentStyle for absent abundances.
func StyleFor(bounds NormalizationBounds, abundance float64) (domain.StyleDescriptor, Intensity, bool) {
	i, ok := bounds.Normalize(abundance)
	if !ok {
		return AbsentStyle(), 0, false
	}
	return MapColor(i), i, true
}

// hexOf flattens an HSLA fill onto the dark page background so terminals and
// other alpha-less renderers get a comparable opaque color.
func hexOf(c domain.HSLA) string {
	fg := colorful.Hsl(math.Mod(c.Hue+360, 360), c.Saturation/100, c.Lightness/100)
	return pageBackground.BlendRgb(fg, clamp01(c.Alpha)).Clamped().Hex()
}

// pageBackground is the slate tone (#0f172a) the table is painted on.
var pageBackground = colorful.Color{R: 15.0 / 255, G: 23.0 / 255, B: 42.0 / 255}
