package domain

import "sort"

// Catalog bundles the three read-only datasets supplied by the loader.
type Catalog struct {
	Elements []ElementRecord         `json:"elements"`
	Isotopes map[int][]IsotopeRecord `json:"isotopes"`
	Nuclides []NuclideDecayRecord    `json:"nuclides"`
}

// Clone returns a deep copy so callers can hand a catalog to the engine
// without sharing backing arrays.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Elements: append([]ElementRecord(nil), c.Elements...),
		Nuclides: append([]NuclideDecayRecord(nil), c.Nuclides...),
	}
	if c.Isotopes != nil {
		out.Isotopes = make(map[int][]IsotopeRecord, len(c.Isotopes))
		for z, isos := range c.Isotopes {
			out.Isotopes[z] = append([]IsotopeRecord(nil), isos...)
		}
	}
	return out
}

// Empty reports whether the catalog carries no records at all.
func (c Catalog) Empty() bool {
	return len(c.Elements) == 0 && len(c.Isotopes) == 0 && len(c.Nuclides) == 0
}

// IsotopeNumbers returns the atomic numbers that have isotope listings, ascending.
func (c Catalog) IsotopeNumbers() []int {
	out := make([]int, 0, len(c.Isotopes))
	for z := range c.Isotopes {
		out = append(out, z)
	}
	sort.Ints(out)
	return out
}
