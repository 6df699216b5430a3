package domain

import (
	"math"
	"strconv"
)

// TextTone is the binary foreground choice painted over a fill.
type TextTone string

const (
	// TextLight is used over dim fills.
	TextLight TextTone = "light"
	// TextDark is used over bright fills.
	TextDark TextTone = "dark"
)

// HSLA is a fill color. Saturation and Lightness are percentages in [0,100];
// Alpha is in [0,1].
type HSLA struct {
	Hue        float64 `json:"h"`
	Saturation float64 `json:"s"`
	Lightness  float64 `json:"l"`
	Alpha      float64 `json:"a"`
}

// CSS renders the color as a CSS hsla() expression.
func (c HSLA) CSS() string {
	return "hsla(" + trimFloat(c.Hue) + ", " + trimFloat(c.Saturation) + "%, " +
		trimFloat(c.Lightness) + "%, " + trimFloat(c.Alpha) + ")"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// StyleDescriptor is everything a renderer needs to paint one element cell
// or isotope card. Glow and Shadow are blur radii in px-equivalent units.
type StyleDescriptor struct {
	Fill        HSLA     `json:"fill"`
	FillHex     string   `json:"fill_hex"`
	Glow        float64  `json:"glow"`
	Shadow      float64  `json:"shadow"`
	BorderAlpha float64  `json:"border_alpha"`
	Text        TextTone `json:"text"`
	Absent      bool     `json:"absent,omitempty"`
}

// StabilityDescriptor summarizes the decay behaviour of one isotope.
type StabilityDescriptor struct {
	Stable        bool   `json:"stable"`
	HalfLife      string `json:"half_life"`
	DecayConstant string `json:"decay_constant"`
}

// Text values used by StabilityDescriptor.
const (
	HalfLifeStable  = "Stable"
	HalfLifeUnknown = "Unknown"
	NotApplicable   = "-"
)

// UnknownStability is returned whenever an isotope cannot be resolved.
func UnknownStability() StabilityDescriptor {
	return StabilityDescriptor{Stable: false, HalfLife: HalfLifeUnknown, DecayConstant: NotApplicable}
}
