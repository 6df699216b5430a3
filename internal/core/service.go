package core

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"nuclidex/pkg/domain"
)

// Service wires the pure engine to a loaded catalog and records outcomes for
// the presentation layer. It is safe for concurrent use once constructed.
type Service struct {
	index    *Index
	bounds   NormalizationBounds
	resolver *Resolver
	metrics  MetricsRecorder
	logger   *zap.Logger
	printer  *message.Printer
	rule     StabilityRule
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBlankRule selects how blank nuclide rows are classified.
func WithBlankRule(rule StabilityRule) Option {
	return func(s *Service) { s.rule = rule }
}

// WithLocale selects the language used to format abundances.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) { s.printer = message.NewPrinter(tag) }
}

// NewService indexes the catalog and computes normalization bounds once.
func NewService(cat domain.Catalog, opts ...Option) *Service {
	s := &Service{
		metrics: noopMetrics{},
		logger:  zap.NewNop(),
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.index = NewIndex(cat)
	s.bounds = ComputeBounds(s.index.Elements())
	s.resolver = NewResolver(s.index, WithStabilityRule(s.rule))
	if err := s.bounds.Err(); err != nil {
		s.logger.Warn("abundance bounds are degenerate; present elements render at full intensity",
			zap.Int("elements", len(cat.Elements)), zap.Error(err))
	}
	s.logger.Debug("catalog indexed",
		zap.Int("elements", len(cat.Elements)),
		zap.Int("isotope_groups", len(cat.Isotopes)),
		zap.Int("nuclides", s.index.NuclideCount()),
		zap.Float64("abundance_min", s.bounds.Min()),
		zap.Float64("abundance_max", s.bounds.Max()))
	return s
}

// Bounds returns the normalization bounds computed at construction.
func (s *Service) Bounds() NormalizationBounds { return s.bounds }

// Index returns the catalog index.
func (s *Service) Index() *Index { return s.index }

// ElementCell is the painted state of one periodic-table cell.
type ElementCell struct {
	Element   domain.ElementRecord   `json:"element"`
	Intensity Intensity              `json:"intensity"`
	Present   bool                   `json:"present"`
	Style     domain.StyleDescriptor `json:"style"`
}

// ElementCells styles every element in catalog order.
func (s *Service) ElementCells() []ElementCell {
	elements := s.index.Elements()
	out := make([]ElementCell, 0, len(elements))
	for _, el := range elements {
		out = append(out, s.cell(el))
	}
	return out
}

// ElementCell styles one element by atomic number.
func (s *Service) ElementCell(num int) (ElementCell, error) {
	el, ok := s.index.ElementByNumber(num)
	if !ok {
		return ElementCell{}, &domain.LookupMiss{Entity: domain.EntityElement, Key: strconv.Itoa(num)}
	}
	return s.cell(el), nil
}

func (s *Service) cell(el domain.ElementRecord) ElementCell {
	style, intensity, present := StyleFor(s.bounds, el.Abundance)
	if present {
		s.metrics.ObserveStyle(StyleElement)
	} else {
		s.metrics.ObserveStyle(StyleElementAbsent)
	}
	return ElementCell{Element: el, Intensity: intensity, Present: present, Style: style}
}

// FindElement accepts an atomic number or a symbol.
func (s *Service) FindElement(ref string) (domain.ElementRecord, error) {
	ref = strings.TrimSpace(ref)
	if num, err := strconv.Atoi(ref); err == nil {
		if el, ok := s.index.ElementByNumber(num); ok {
			return el, nil
		}
	} else if el, ok := s.index.ElementBySymbol(ref); ok {
		return el, nil
	}
	return domain.ElementRecord{}, &domain.LookupMiss{Entity: domain.EntityElement, Key: ref}
}

// IsotopeCard is the painted state of one isotope in an element's breakdown.
type IsotopeCard struct {
	Isotope   domain.IsotopeRecord       `json:"isotope"`
	Style     domain.StyleDescriptor     `json:"style"`
	Stability domain.StabilityDescriptor `json:"stability"`
}

// IsotopeCards builds the isotope breakdown for an element. An element with
// no isotope listing yields an empty slice.
func (s *Service) IsotopeCards(num int) ([]IsotopeCard, error) {
	el, ok := s.index.ElementByNumber(num)
	if !ok {
		return nil, &domain.LookupMiss{Entity: domain.EntityElement, Key: strconv.Itoa(num)}
	}
	isotopes := s.index.Isotopes(num)
	cards := make([]IsotopeCard, 0, len(isotopes))
	for _, iso := range isotopes {
		if iso.MassNumber < el.Number {
			s.logger.Warn("isotope mass number below atomic number",
				zap.String("nuclide", iso.Nuclide),
				zap.Int("mass_number", iso.MassNumber),
				zap.Int("atomic_number", el.Number))
		}
		style := MapIsotopeColor(iso.Abundance)
		if style.Absent {
			s.metrics.ObserveStyle(StyleIsotopeAbsent)
		} else {
			s.metrics.ObserveStyle(StyleIsotope)
		}
		cards = append(cards, IsotopeCard{Isotope: iso, Style: style, Stability: s.Resolve(iso)})
	}
	return cards, nil
}

// Resolve classifies an isotope, recording the outcome.
func (s *Service) Resolve(iso domain.IsotopeRecord) domain.StabilityDescriptor {
	desc, err := s.resolver.ResolveDetail(iso)
	s.metrics.ObserveResolution(outcomeOf(desc, err))
	if err != nil {
		s.logger.Debug("isotope unresolved", zap.String("nuclide", iso.Nuclide), zap.Error(err))
	}
	return desc
}

// ResolveID classifies a bare "<Symbol>-<MassNumber>" identifier.
func (s *Service) ResolveID(id string) domain.StabilityDescriptor {
	return s.Resolve(domain.IsotopeRecord{Nuclide: id})
}

func outcomeOf(desc domain.StabilityDescriptor, err error) ResolutionOutcome {
	var pe *domain.ParseError
	switch {
	case errors.As(err, &pe):
		return OutcomeParseError
	case err != nil:
		return OutcomeLookupMiss
	case desc.Stable:
		return OutcomeStable
	default:
		return OutcomeUnstable
	}
}

// ElementInfo is the hover panel content for one element.
type ElementInfo struct {
	Number        int       `json:"number"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Abundance     float64   `json:"abundance"`
	AbundanceText string    `json:"abundance_text"`
	Intensity     Intensity `json:"intensity"`
	Present       bool      `json:"present"`
}

// ElementInfo returns the info panel for an element by atomic number.
func (s *Service) ElementInfo(num int) (ElementInfo, error) {
	el, ok := s.index.ElementByNumber(num)
	if !ok {
		return ElementInfo{}, &domain.LookupMiss{Entity: domain.EntityElement, Key: strconv.Itoa(num)}
	}
	intensity, present := s.bounds.Normalize(el.Abundance)
	return ElementInfo{
		Number:        el.Number,
		Symbol:        el.Symbol,
		Name:          el.Name,
		Abundance:     el.Abundance,
		AbundanceText: s.FormatAbundance(el.Abundance),
		Intensity:     intensity,
		Present:       present,
	}, nil
}

// FormatAbundance groups digits using the service locale.
func (s *Service) FormatAbundance(v float64) string {
	return s.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(6)))
}
