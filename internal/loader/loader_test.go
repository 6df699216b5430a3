package loader

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"nuclidex/internal/source"
	"nuclidex/pkg/domain"
)

const (
	elementsJSON = `[{"number":1,"symbol":"H","name":"Hydrogen","abundance":1400,"col":1,"row":1},
{"number":8,"symbol":"O","name":"Oxygen","abundance":461000,"col":16,"row":2}]`
	isotopesJSON = `{"1":[{"nuclide":"H-1","mass_number":1,"atomic_mass":1.00782503,"abundance":0.999885}]}`
	nuclidesCSV  = "decay_1,z,n,symbol,half_life_sec,extra\n" +
		"S,1,0,H,,x\n" +
		"B-,1,2,H,388789632,y\n" +
		"S,bad,0,H,,z\n" +
		"S,8,8,O,,w\n"
)

func seed(t *testing.T, st source.Store, objs map[string]string) {
	t.Helper()
	for k, v := range objs {
		if _, err := st.Put(context.Background(), k, strings.NewReader(v), source.PutOptions{}); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
}

func TestLoad_FromMemory(t *testing.T) {
	st := source.NewMemory()
	seed(t, st, map[string]string{"elements.json": elementsJSON, "isotopes.json": isotopesJSON, "nuclides.csv": nuclidesCSV})
	core, logs := observer.New(zapcore.WarnLevel)
	cat, err := Load(context.Background(), st, Keys{}, zap.New(core))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Elements) != 2 || cat.Elements[1].Column != 16 {
		t.Fatalf("unexpected elements %+v", cat.Elements)
	}
	if got := cat.Isotopes[1]; len(got) != 1 || got[0].MassNumber != 1 {
		t.Fatalf("unexpected isotopes %+v", cat.Isotopes)
	}
	if len(cat.Nuclides) != 3 {
		t.Fatalf("expected 3 nuclides, got %+v", cat.Nuclides)
	}
	if r := cat.Nuclides[1]; r.HalfLifeSeconds != "388789632" || r.DecayMode != "B-" || r.MassNumber() != 3 {
		t.Fatalf("unexpected tritium row %+v", r)
	}
	if logs.FilterMessage("skipping malformed nuclide row").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
}

func TestLoad_FromMockS3(t *testing.T) {
	st := source.NewMockS3ForTests()
	seed(t, st, map[string]string{"e.json": elementsJSON, "i.json": isotopesJSON, "n.csv": nuclidesCSV})
	cat, err := Load(context.Background(), st, Keys{Elements: "e.json", Isotopes: "i.json", Nuclides: "n.csv"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Elements) != 2 || len(cat.Nuclides) != 3 {
		t.Fatalf("unexpected catalog %+v", cat)
	}
}

func TestLoad_Embedded(t *testing.T) {
	st, err := source.Open(context.Background(), source.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	cat, err := Load(context.Background(), st, DefaultKeys(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Elements) < 30 || len(cat.Nuclides) == 0 || len(cat.Isotopes[26]) == 0 {
		t.Fatalf("bundled catalog looks incomplete: %d elements", len(cat.Elements))
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := Load(ctx, nil, Keys{}, nil); err == nil {
		t.Fatalf("expected nil source error")
	}
	missing := source.NewMemory()
	seed(t, missing, map[string]string{"elements.json": elementsJSON, "isotopes.json": isotopesJSON})
	if _, err := Load(ctx, missing, Keys{}, nil); !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	broken := source.NewMemory()
	seed(t, broken, map[string]string{"elements.json": "{", "isotopes.json": isotopesJSON, "nuclides.csv": nuclidesCSV})
	if _, err := Load(ctx, broken, Keys{}, nil); err == nil || !strings.Contains(err.Error(), "decode elements.json") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecodeNuclides(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		records int
		skipped int
		wantErr bool
	}{
		{"empty", "", 0, 0, true},
		{"missing column", "z,n,symbol,half_life_sec\n1,0,H,\n", 0, 0, true},
		{"header only", "z,n,symbol,half_life_sec,decay_1\n", 0, 0, false},
		{"negative", "z,n,symbol,half_life_sec,decay_1\n-1,0,X,,S\n1,0,H,,S\n", 1, 1, false},
		{"short row", "z,n,symbol,half_life_sec,decay_1\n1,0\n", 1, 0, false},
		{"bad quote", "z,n,symbol,half_life_sec,decay_1\n1,0,\"H,,S\n", 0, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			recs, skipped, err := DecodeNuclides(strings.NewReader(c.in))
			if (err != nil) != c.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, c.wantErr)
			}
			if len(recs) != c.records || len(skipped) != c.skipped {
				t.Fatalf("records=%d skipped=%d", len(recs), len(skipped))
			}
		})
	}
}

func TestPublishRoundTrip(t *testing.T) {
	ctx := context.Background()
	cat := domain.Catalog{
		Elements: []domain.ElementRecord{{Number: 26, Symbol: "Fe", Name: "Iron", Abundance: 56300, Column: 8, Row: 4}},
		Isotopes: map[int][]domain.IsotopeRecord{26: {
			{Nuclide: "Fe-56", MassNumber: 56, Abundance: 0.91754},
			{Nuclide: "Fe-54", MassNumber: 54, Abundance: 0.05845},
		}},
		Nuclides: []domain.NuclideDecayRecord{{Z: 26, N: 29, Symbol: "Fe", HalfLifeSeconds: "8.6592e7", DecayMode: "EC"}},
	}
	dst := source.NewMemory()
	if err := Publish(ctx, dst, Keys{}, cat); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := Load(ctx, dst, Keys{}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Elements[0] != cat.Elements[0] || got.Nuclides[0] != cat.Nuclides[0] {
		t.Fatalf("round trip mismatch %+v", got)
	}
	if got.Isotopes[26][0].Nuclide != "Fe-54" {
		t.Fatalf("expected isotopes ordered by mass, got %+v", got.Isotopes[26])
	}
	if err := Publish(ctx, dst, Keys{}, cat); !errors.Is(err, source.ErrExists) {
		t.Fatalf("expected exists on republish, got %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeNuclides(&buf, cat.Nuclides); err != nil || !strings.HasPrefix(buf.String(), "z,n,symbol,half_life_sec,decay_1\n") {
		t.Fatalf("encode: %v %q", err, buf.String())
	}
}
