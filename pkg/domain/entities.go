// Package domain defines the catalog records, derived descriptors, and
// recoverable error types shared by the nuclidex engine and its adapters.
package domain

import "strconv"

// EntityType identifies the kind of catalog record a lookup targeted.
type EntityType string

// Supported entity type identifiers used in LookupMiss errors and persistence buckets.
const (
	// EntityElement identifies an element record.
	EntityElement EntityType = "element"
	// EntityIsotope identifies an isotope record.
	EntityIsotope EntityType = "isotope"
	// EntityNuclide identifies a nuclide decay record.
	EntityNuclide EntityType = "nuclide"
)

// ElementRecord describes a chemical element and its natural abundance.
// Abundance uses an arbitrary but corpus-consistent unit; zero means the
// element does not occur naturally.
type ElementRecord struct {
	Number    int     `json:"number"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Abundance float64 `json:"abundance"`
	Column    int     `json:"col"`
	Row       int     `json:"row"`
}

// IsotopeRecord describes one isotope of an element as listed on its card.
type IsotopeRecord struct {
	Nuclide    string  `json:"nuclide"` // <Symbol>-<MassNumber>
	MassNumber int     `json:"mass_number"`
	AtomicMass float64 `json:"atomic_mass"` // unified atomic mass units
	Abundance  float64 `json:"abundance"`   // fraction in [0,1]
}

// NuclideDecayRecord is one row of the nuclide decay table. HalfLifeSeconds
// keeps the raw field text; blank means not applicable.
type NuclideDecayRecord struct {
	Z               int    `json:"z"`
	N               int    `json:"n"`
	Symbol          string `json:"symbol"`
	HalfLifeSeconds string `json:"half_life_sec"`
	DecayMode       string `json:"decay_mode"`
}

// DecayModeStable is the decay mode code reserved for stable nuclides.
const DecayModeStable = "S"

// MassNumber returns Z+N.
func (r NuclideDecayRecord) MassNumber() int { return r.Z + r.N }

// IsotopeKey is the structured form of a "<Symbol>-<MassNumber>" identifier.
type IsotopeKey struct {
	Symbol     string
	MassNumber int
}

func (k IsotopeKey) String() string {
	return k.Symbol + "-" + strconv.Itoa(k.MassNumber)
}
