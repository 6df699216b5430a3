// Package loader decodes the element, isotope and nuclide datasets from a
// dataset source into a domain.Catalog.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nuclidex/internal/source"
	"nuclidex/pkg/domain"
)

// Keys names the dataset objects inside a source.
type Keys struct {
	Elements string `yaml:"elements"`
	Isotopes string `yaml:"isotopes"`
	Nuclides string `yaml:"nuclides"`
}

// DefaultKeys returns the bundled dataset names.
func DefaultKeys() Keys {
	return Keys{Elements: "elements.json", Isotopes: "isotopes.json", Nuclides: "nuclides.csv"}
}

func (k Keys) withDefaults() Keys {
	d := DefaultKeys()
	if k.Elements == "" {
		k.Elements = d.Elements
	}
	if k.Isotopes == "" {
		k.Isotopes = d.Isotopes
	}
	if k.Nuclides == "" {
		k.Nuclides = d.Nuclides
	}
	return k
}

// nuclideColumns are required in the nuclides.csv header.
var nuclideColumns = []string{"z", "n", "symbol", "half_life_sec", "decay_1"}

// Load fetches the three datasets concurrently and assembles a catalog.
// Malformed nuclide rows are skipped with a warning; malformed JSON aborts.
func Load(ctx context.Context, src source.Store, keys Keys, logger *zap.Logger) (domain.Catalog, error) {
	if src == nil {
		return domain.Catalog{}, errors.New("loader: nil source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	keys = keys.withDefaults()
	var cat domain.Catalog
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		b, err := fetch(egCtx, src, keys.Elements)
		if err != nil {
			return err
		}
		cat.Elements, err = DecodeElements(b)
		return wrapDecode(keys.Elements, err)
	})
	eg.Go(func() error {
		b, err := fetch(egCtx, src, keys.Isotopes)
		if err != nil {
			return err
		}
		cat.Isotopes, err = DecodeIsotopes(b)
		return wrapDecode(keys.Isotopes, err)
	})
	eg.Go(func() error {
		b, err := fetch(egCtx, src, keys.Nuclides)
		if err != nil {
			return err
		}
		var skipped []RowError
		cat.Nuclides, skipped, err = DecodeNuclides(bytes.NewReader(b))
		for _, s := range skipped {
			logger.Warn("skipping malformed nuclide row",
				zap.String("dataset", keys.Nuclides), zap.Int("line", s.Line), zap.Error(s.Err))
		}
		return wrapDecode(keys.Nuclides, err)
	})
	if err := eg.Wait(); err != nil {
		return domain.Catalog{}, err
	}
	logger.Info("catalog loaded",
		zap.String("driver", string(src.Driver())),
		zap.Int("elements", len(cat.Elements)),
		zap.Int("isotope_groups", len(cat.Isotopes)),
		zap.Int("nuclides", len(cat.Nuclides)))
	return cat, nil
}

func fetch(ctx context.Context, src source.Store, key string) ([]byte, error) {
	_, rc, err := src.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

func wrapDecode(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("decode %s: %w", key, err)
}

// DecodeElements parses an array of element records.
func DecodeElements(b []byte) ([]domain.ElementRecord, error) {
	var out []domain.ElementRecord
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeIsotopes parses an object keyed by atomic number.
func DecodeIsotopes(b []byte) (map[int][]domain.IsotopeRecord, error) {
	var out map[int][]domain.IsotopeRecord
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[int][]domain.IsotopeRecord{}
	}
	return out, nil
}

// RowError describes a nuclide row that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// DecodeNuclides parses a nuclide decay table with a header row. Column order
// is free and extra columns are ignored. Rows whose z or n do not parse as
// non-negative integers are returned as RowErrors instead of records.
func DecodeNuclides(r io.Reader) ([]domain.NuclideDecayRecord, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("missing header")
		}
		return nil, nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range nuclideColumns {
		if _, ok := idx[c]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", c)
		}
	}
	var (
		out     []domain.NuclideDecayRecord
		skipped []RowError
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped = append(skipped, RowError{Line: pe.Line, Err: err})
				continue
			}
			return nil, skipped, err
		}
		line, _ := cr.FieldPos(0)
		field := func(name string) string {
			i := idx[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		z, zerr := strconv.Atoi(field("z"))
		n, nerr := strconv.Atoi(field("n"))
		switch {
		case zerr != nil:
			skipped = append(skipped, RowError{Line: line, Err: fmt.Errorf("z: %w", zerr)})
			continue
		case nerr != nil:
			skipped = append(skipped, RowError{Line: line, Err: fmt.Errorf("n: %w", nerr)})
			continue
		case z < 0 || n < 0:
			skipped = append(skipped, RowError{Line: line, Err: fmt.Errorf("negative z or n")})
			continue
		}
		out = append(out, domain.NuclideDecayRecord{
			Z:               z,
			N:               n,
			Symbol:          field("symbol"),
			HalfLifeSeconds: field("half_life_sec"),
			DecayMode:       field("decay_1"),
		})
	}
	return out, skipped, nil
}

// EncodeNuclides writes records in the nuclides.csv layout.
func EncodeNuclides(w io.Writer, recs []domain.NuclideDecayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nuclideColumns); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{strconv.Itoa(r.Z), strconv.Itoa(r.N), r.Symbol, r.HalfLifeSeconds, r.DecayMode}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Publish writes the catalog into dst under keys. Existing objects are
// reported as errors by the source.
func Publish(ctx context.Context, dst source.Store, keys Keys, cat domain.Catalog) error {
	keys = keys.withDefaults()
	elements, err := json.MarshalIndent(cat.Elements, "", "  ")
	if err != nil {
		return err
	}
	isotopes, err := json.MarshalIndent(sortedIsotopes(cat.Isotopes), "", "  ")
	if err != nil {
		return err
	}
	var nuclides bytes.Buffer
	if err := EncodeNuclides(&nuclides, cat.Nuclides); err != nil {
		return err
	}
	objects := []struct {
		key, contentType string
		body             []byte
	}{
		{keys.Elements, "application/json", elements},
		{keys.Isotopes, "application/json", isotopes},
		{keys.Nuclides, "text/csv", nuclides.Bytes()},
	}
	for _, o := range objects {
		if _, err := dst.Put(ctx, o.key, bytes.NewReader(o.body), source.PutOptions{ContentType: o.contentType}); err != nil {
			return fmt.Errorf("publish %s: %w", o.key, err)
		}
	}
	return nil
}

// sortedIsotopes orders each group by mass number.
func sortedIsotopes(in map[int][]domain.IsotopeRecord) map[int][]domain.IsotopeRecord {
	out := make(map[int][]domain.IsotopeRecord, len(in))
	for z, isos := range in {
		cp := append([]domain.IsotopeRecord(nil), isos...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].MassNumber < cp[j].MassNumber })
		out[z] = cp
	}
	return out
}
