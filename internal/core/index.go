package core

import (
	"strings"

	"nuclidex/pkg/domain"
)

type zn struct{ z, n int }

// Index pre-builds the lookups the resolver needs so each resolution is O(1).
// When a catalog repeats a key the first record wins, matching a linear scan.
// An Index is read-only after NewIndex returns.
type Index struct {
	elements   []domain.ElementRecord
	bySymbol   map[string]int
	byFold     map[string]int
	byNumber   map[int]int
	nuclides   map[zn]domain.NuclideDecayRecord
	isotopes   map[int][]domain.IsotopeRecord
	nuclideLen int
}

// NewIndex copies the catalog into lookup maps.
func NewIndex(cat domain.Catalog) *Index {
	idx := &Index{
		elements: append([]domain.ElementRecord(nil), cat.Elements...),
		bySymbol: make(map[string]int, len(cat.Elements)),
		byFold:   make(map[string]int, len(cat.Elements)),
		byNumber: make(map[int]int, len(cat.Elements)),
		nuclides: make(map[zn]domain.NuclideDecayRecord, len(cat.Nuclides)),
		isotopes: make(map[int][]domain.IsotopeRecord, len(cat.Isotopes)),
	}
	for i, el := range idx.elements {
		sym := strings.TrimSpace(el.Symbol)
		if _, ok := idx.bySymbol[sym]; !ok {
			idx.bySymbol[sym] = i
		}
		fold := strings.ToLower(sym)
		if _, ok := idx.byFold[fold]; !ok {
			idx.byFold[fold] = i
		}
		if _, ok := idx.byNumber[el.Number]; !ok {
			idx.byNumber[el.Number] = i
		}
	}
	for _, rec := range cat.Nuclides {
		key := zn{rec.Z, rec.N}
		if _, ok := idx.nuclides[key]; !ok {
			idx.nuclides[key] = rec
		}
	}
	idx.nuclideLen = len(idx.nuclides)
	for z, isos := range cat.Isotopes {
		idx.isotopes[z] = append([]domain.IsotopeRecord(nil), isos...)
	}
	return idx
}

// Elements returns the element records in catalog order.
func (x *Index) Elements() []domain.ElementRecord {
	return append([]domain.ElementRecord(nil), x.elements...)
}

// ElementBySymbol finds an element by exact symbol, then case-insensitively.
func (x *Index) ElementBySymbol(symbol string) (domain.ElementRecord, bool) {
	sym := strings.TrimSpace(symbol)
	if i, ok := x.bySymbol[sym]; ok {
		return x.elements[i], true
	}
	if i, ok := x.byFold[strings.ToLower(sym)]; ok {
		return x.elements[i], true
	}
	return domain.ElementRecord{}, false
}

// ElementByNumber finds an element by atomic number.
func (x *Index) ElementByNumber(number int) (domain.ElementRecord, bool) {
	if i, ok := x.byNumber[number]; ok {
		return x.elements[i], true
	}
	return domain.ElementRecord{}, false
}

// Nuclide finds the decay record for proton count z and neutron count n.
func (x *Index) Nuclide(z, n int) (domain.NuclideDecayRecord, bool) {
	rec, ok := x.nuclides[zn{z, n}]
	return rec, ok
}

// Isotopes returns the isotope listing for an atomic number.
func (x *Index) Isotopes(number int) []domain.IsotopeRecord {
	return append([]domain.IsotopeRecord(nil), x.isotopes[number]...)
}

// NuclideCount returns the number of distinct (Z,N) keys indexed.
func (x *Index) NuclideCount() int { return x.nuclideLen }
