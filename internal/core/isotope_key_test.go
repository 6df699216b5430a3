package core

import (
	"testing"

	"nuclidex/pkg/domain"
)

func TestParseIsotopeKey(t *testing.T) {
	cases := []struct {
		in   string
		want domain.IsotopeKey
	}{
		{"H-1", domain.IsotopeKey{Symbol: "H", MassNumber: 1}},
		{"Fe-56", domain.IsotopeKey{Symbol: "Fe", MassNumber: 56}},
		{" U-238 ", domain.IsotopeKey{Symbol: "U", MassNumber: 238}},
		{"Tc - 99", domain.IsotopeKey{Symbol: "Tc", MassNumber: 99}},
	}
	for _, c := range cases {
		got, err := ParseIsotopeKey(c.in)
		if err != nil {
			t.Fatalf("ParseIsotopeKey(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseIsotopeKey(%q) = %+v want %+v", c.in, got, c.want)
		}
	}
}

func TestParseIsotopeKeyRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "H1", "H-", "-1", "H-abc", "H-1.5", "H-+1", "H-0", "H-99999999999999999999999"} {
		_, err := ParseIsotopeKey(in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		if !domain.IsParseError(err) {
			t.Fatalf("expected ParseError for %q, got %T", in, err)
		}
	}
}

func TestIsotopeKeyString(t *testing.T) {
	if got := (domain.IsotopeKey{Symbol: "C", MassNumber: 14}).String(); got != "C-14" {
		t.Fatalf("String() = %q", got)
	}
}
