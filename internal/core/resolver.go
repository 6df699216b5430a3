package core

import (
	"math"
	"strconv"
	"strings"

	"nuclidex/pkg/domain"
)

// StabilityRule selects how a nuclide row with neither a decay mode nor a
// half-life is classified.
type StabilityRule int

const (
	// BlankIsStable treats a blank mode with a blank half-life as stable.
	BlankIsStable StabilityRule = iota
	// BlankIsUnknown reports such rows as unresolved data gaps.
	BlankIsUnknown
)

// Resolver classifies isotopes against the nuclide decay table.
type Resolver struct {
	index *Index
	rule  StabilityRule
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStabilityRule overrides the blank-row classification.
func WithStabilityRule(rule StabilityRule) ResolverOption {
	return func(r *Resolver) { r.rule = rule }
}

// NewResolver constructs a resolver over a pre-built index. A nil index
// behaves like an empty catalog.
func NewResolver(index *Index, opts ...ResolverOption) *Resolver {
	if index == nil {
		index = NewIndex(domain.Catalog{})
	}
	r := &Resolver{index: index}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the stability descriptor for an isotope. It never fails:
// unresolvable isotopes produce domain.UnknownStability.
func (r *Resolver) Resolve(isotope domain.IsotopeRecord) domain.StabilityDescriptor {
	desc, _ := r.ResolveDetail(isotope)
	return desc
}

// ResolveDetail is Resolve plus the recovered cause, if any. The descriptor is
// always valid; a non-nil error is a *domain.ParseError or *domain.LookupMiss.
func (r *Resolver) ResolveDetail(isotope domain.IsotopeRecord) (domain.StabilityDescriptor, error) {
	key, err := ParseIsotopeKey(isotope.Nuclide)
	if err != nil {
		return domain.UnknownStability(), err
	}
	rec, err := r.lookup(key)
	if err != nil {
		return domain.UnknownStability(), err
	}
	return r.classify(rec)
}

// ResolveID resolves a bare "<Symbol>-<MassNumber>" identifier.
func (r *Resolver) ResolveID(id string) (domain.StabilityDescriptor, error) {
	return r.ResolveDetail(domain.IsotopeRecord{Nuclide: id})
}

func (r *Resolver) lookup(key domain.IsotopeKey) (domain.NuclideDecayRecord, error) {
	el, ok := r.index.ElementBySymbol(key.Symbol)
	if !ok {
		return domain.NuclideDecayRecord{}, &domain.LookupMiss{Entity: domain.EntityElement, Key: key.Symbol}
	}
	n := key.MassNumber - el.Number
	if n < 0 {
		return domain.NuclideDecayRecord{}, &domain.LookupMiss{Entity: domain.EntityNuclide, Key: key.String()}
	}
	rec, ok := r.index.Nuclide(el.Number, n)
	if !ok {
		return domain.NuclideDecayRecord{}, &domain.LookupMiss{Entity: domain.EntityNuclide, Key: key.String()}
	}
	return rec, nil
}

func (r *Resolver) classify(rec domain.NuclideDecayRecord) (domain.StabilityDescriptor, error) {
	mode := strings.TrimSpace(rec.DecayMode)
	life := strings.TrimSpace(rec.HalfLifeSeconds)
	if mode == domain.DecayModeStable {
		return stable(), nil
	}
	if mode == "" && life == "" {
		if r.rule == BlankIsUnknown {
			return domain.UnknownStability(), &domain.ParseError{Input: rec.Symbol, Reason: "blank decay mode and half-life"}
		}
		return stable(), nil
	}
	seconds, err := strconv.ParseFloat(life, 64)
	if err != nil || !(seconds > 0) || math.IsInf(seconds, 0) {
		return domain.UnknownStability(), &domain.ParseError{Input: rec.HalfLifeSeconds, Reason: "half-life is not a positive number of seconds"}
	}
	return domain.StabilityDescriptor{
		Stable:        false,
		HalfLife:      FormatHalfLife(seconds),
		DecayConstant: FormatDecayConstant(seconds),
	}, nil
}

func stable() domain.StabilityDescriptor {
	return domain.StabilityDescriptor{Stable: true, HalfLife: domain.HalfLifeStable, DecayConstant: domain.NotApplicable}
}
