package core

import (
	"math"
	"testing"

	"nuclidex/pkg/domain"
)

const eps = 1e-9

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s: got %v want %v", name, got, want)
	}
}

// sampleCatalog is a trimmed slice of the crustal dataset: oxygen sets the
// maximum, krypton the minimum, technetium is absent.
func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Elements: []domain.ElementRecord{
			{Number: 1, Symbol: "H", Name: "Hydrogen", Abundance: 1400, Column: 1, Row: 1},
			{Number: 2, Symbol: "He", Name: "Helium", Abundance: 0.008, Column: 18, Row: 1},
			{Number: 6, Symbol: "C", Name: "Carbon", Abundance: 200, Column: 14, Row: 2},
			{Number: 8, Symbol: "O", Name: "Oxygen", Abundance: 461000, Column: 16, Row: 2},
			{Number: 26, Symbol: "Fe", Name: "Iron", Abundance: 56300, Column: 8, Row: 4},
			{Number: 36, Symbol: "Kr", Name: "Krypton", Abundance: 0.0001, Column: 18, Row: 4},
			{Number: 43, Symbol: "Tc", Name: "Technetium", Abundance: 0, Column: 7, Row: 5},
		},
		Isotopes: map[int][]domain.IsotopeRecord{
			1: {
				{Nuclide: "H-1", MassNumber: 1, AtomicMass: 1.00782503207, Abundance: 0.999885},
				{Nuclide: "H-2", MassNumber: 2, AtomicMass: 2.0141017778, Abundance: 0.000115},
				{Nuclide: "H-3", MassNumber: 3, AtomicMass: 3.0160492777, Abundance: 0},
			},
			26: {
				{Nuclide: "Fe-55", MassNumber: 55, AtomicMass: 54.9382934, Abundance: 0},
				{Nuclide: "Fe-56", MassNumber: 56, AtomicMass: 55.9349375, Abundance: 0.91754},
			},
			43: {
				{Nuclide: "Tc-99", MassNumber: 99, AtomicMass: 98.9062547, Abundance: 0},
				{Nuclide: "Tc-5", MassNumber: 5, AtomicMass: 5, Abundance: 0},
			},
		},
		Nuclides: []domain.NuclideDecayRecord{
			{Z: 0, N: 1, Symbol: "n", HalfLifeSeconds: "613.9", DecayMode: "B-"},
			{Z: 1, N: 0, Symbol: "H", DecayMode: "S"},
			{Z: 1, N: 1, Symbol: "H", DecayMode: " S "},
			{Z: 1, N: 2, Symbol: "H", HalfLifeSeconds: "388789632", DecayMode: "B-"},
			{Z: 26, N: 29, Symbol: "Fe", HalfLifeSeconds: "8.6592e7", DecayMode: "EC"},
			{Z: 26, N: 30, Symbol: "Fe", HalfLifeSeconds: "", DecayMode: ""},
			{Z: 43, N: 56, Symbol: "Tc", HalfLifeSeconds: "6.662e12", DecayMode: "B-"},
			{Z: 6, N: 8, Symbol: "C", HalfLifeSeconds: "about 5730 years", DecayMode: "B-"},
		},
	}
}
