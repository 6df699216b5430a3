// Package persistence holds the bucket layout shared by the catalog snapshot
// stores: one JSON payload per dataset, keyed by bucket name in a state table.
package persistence

import (
	"encoding/json"
	"fmt"

	"nuclidex/pkg/domain"
)

// Bucket names used as primary keys of the state table.
const (
	BucketElements = "elements"
	BucketIsotopes = "isotopes"
	BucketNuclides = "nuclides"
)

// Buckets lists every bucket in write order.
var Buckets = []string{BucketElements, BucketIsotopes, BucketNuclides}

// Encode marshals each dataset of cat into its bucket payload.
func Encode(cat domain.Catalog) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Buckets))
	for _, bucket := range Buckets {
		var (
			data []byte
			err  error
		)
		switch bucket {
		case BucketElements:
			data, err = json.Marshal(nonNilElements(cat.Elements))
		case BucketIsotopes:
			data, err = json.Marshal(nonNilIsotopes(cat.Isotopes))
		case BucketNuclides:
			data, err = json.Marshal(nonNilNuclides(cat.Nuclides))
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = data
	}
	return out, nil
}

// Decode rebuilds a catalog from bucket payloads. Unknown buckets are
// ignored; an empty payload set yields domain.ErrNoSnapshot.
func Decode(payloads map[string][]byte) (domain.Catalog, error) {
	if len(payloads) == 0 {
		return domain.Catalog{}, domain.ErrNoSnapshot
	}
	var cat domain.Catalog
	for bucket, payload := range payloads {
		var target any
		switch bucket {
		case BucketElements:
			target = &cat.Elements
		case BucketIsotopes:
			target = &cat.Isotopes
		case BucketNuclides:
			target = &cat.Nuclides
		default:
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return domain.Catalog{}, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	return cat, nil
}

func nonNilElements(in []domain.ElementRecord) []domain.ElementRecord {
	if in == nil {
		return []domain.ElementRecord{}
	}
	return in
}

func nonNilIsotopes(in map[int][]domain.IsotopeRecord) map[int][]domain.IsotopeRecord {
	if in == nil {
		return map[int][]domain.IsotopeRecord{}
	}
	return in
}

func nonNilNuclides(in []domain.NuclideDecayRecord) []domain.NuclideDecayRecord {
	if in == nil {
		return []domain.NuclideDecayRecord{}
	}
	return in
}
