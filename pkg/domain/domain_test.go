package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestHSLACSS(t *testing.T) {
	cases := []struct {
		in   HSLA
		want string
	}{
		{HSLA{Hue: 0, Saturation: 80, Lightness: 50, Alpha: 1}, "hsla(0, 80%, 50%, 1)"},
		{HSLA{Hue: 60, Saturation: 80, Lightness: 40.12345, Alpha: 0.5}, "hsla(60, 80%, 40.123%, 0.5)"},
		{HSLA{Hue: 30.0004, Saturation: 20, Lightness: 20, Alpha: 0.25}, "hsla(30, 20%, 20%, 0.25)"},
	}
	for _, tc := range cases {
		if got := tc.in.CSS(); got != tc.want {
			t.Errorf("CSS(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsotopeKeyAndMassNumber(t *testing.T) {
	if got := (IsotopeKey{Symbol: "Fe", MassNumber: 56}).String(); got != "Fe-56" {
		t.Fatalf("String() = %q", got)
	}
	if got := (NuclideDecayRecord{Z: 26, N: 30}).MassNumber(); got != 56 {
		t.Fatalf("MassNumber() = %d", got)
	}
}

func TestUnknownStability(t *testing.T) {
	got := UnknownStability()
	if got.Stable || got.HalfLife != HalfLifeUnknown || got.DecayConstant != NotApplicable {
		t.Fatalf("UnknownStability() = %+v", got)
	}
}

func TestCatalogCloneIsDeep(t *testing.T) {
	cat := Catalog{
		Elements: []ElementRecord{{Number: 1, Symbol: "H"}},
		Isotopes: map[int][]IsotopeRecord{1: {{Nuclide: "H-1", MassNumber: 1}}},
		Nuclides: []NuclideDecayRecord{{Z: 1, N: 0, Symbol: "H"}},
	}
	cp := cat.Clone()
	cp.Elements[0].Symbol = "X"
	cp.Isotopes[1][0].Nuclide = "X-1"
	cp.Nuclides[0].Symbol = "X"
	if cat.Elements[0].Symbol != "H" || cat.Isotopes[1][0].Nuclide != "H-1" || cat.Nuclides[0].Symbol != "H" {
		t.Fatalf("clone shares storage with original: %+v", cat)
	}
	if (Catalog{}).Clone().Isotopes != nil {
		t.Fatalf("clone of empty catalog allocated isotopes")
	}
}

func TestCatalogEmptyAndIsotopeNumbers(t *testing.T) {
	if !(Catalog{}).Empty() {
		t.Fatalf("zero catalog should be empty")
	}
	cat := Catalog{Isotopes: map[int][]IsotopeRecord{26: nil, 1: nil, 8: nil}}
	if cat.Empty() {
		t.Fatalf("catalog with isotope keys reported empty")
	}
	got := cat.IsotopeNumbers()
	want := []int{1, 8, 26}
	if len(got) != len(want) {
		t.Fatalf("IsotopeNumbers() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IsotopeNumbers() = %v, want %v", got, want)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	pe := fmt.Errorf("resolve: %w", &ParseError{Input: "Fe56", Reason: "missing separator"})
	lm := fmt.Errorf("resolve: %w", &LookupMiss{Entity: EntityElement, Key: "Xx"})

	if !IsParseError(pe) || IsLookupMiss(pe) {
		t.Fatalf("parse error classification wrong: %v", pe)
	}
	if !IsLookupMiss(lm) || IsParseError(lm) {
		t.Fatalf("lookup miss classification wrong: %v", lm)
	}
	if IsParseError(ErrDegenerateCorpus) || IsLookupMiss(ErrNoSnapshot) {
		t.Fatalf("sentinels misclassified")
	}
	if got := lm.Error(); got != "resolve: element Xx not found" {
		t.Fatalf("LookupMiss message = %q", got)
	}
	if got := pe.Error(); got != `resolve: parse "Fe56": missing separator` {
		t.Fatalf("ParseError message = %q", got)
	}
	if !errors.Is(fmt.Errorf("load: %w", ErrNoSnapshot), ErrNoSnapshot) {
		t.Fatalf("ErrNoSnapshot does not unwrap")
	}
}
