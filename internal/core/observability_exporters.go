package core

import (
	"errors"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ResolutionOutcome labels the result of one isotope resolution.
type ResolutionOutcome string

const (
	OutcomeStable     ResolutionOutcome = "stable"
	OutcomeUnstable   ResolutionOutcome = "unstable"
	OutcomeParseError ResolutionOutcome = "parse_error"
	OutcomeLookupMiss ResolutionOutcome = "lookup_miss"
)

// StyleKind labels which mapper produced a style.
type StyleKind string

const (
	StyleElement       StyleKind = "element"
	StyleElementAbsent StyleKind = "element_absent"
	StyleIsotope       StyleKind = "isotope"
	StyleIsotopeAbsent StyleKind = "isotope_absent"
)

// MetricsRecorder receives counters from Service. Implementations must be
// safe for concurrent use.
type MetricsRecorder interface {
	ObserveResolution(outcome ResolutionOutcome)
	ObserveStyle(kind StyleKind)
}

type noopMetrics struct{}

func (noopMetrics) ObserveResolution(ResolutionOutcome) {}
func (noopMetrics) ObserveStyle(StyleKind)              {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes counters via expvar for deployments that
// prefer process-local metrics.
type ExpvarMetricsRecorder struct {
	name        string
	mu          sync.Mutex
	resolutions map[ResolutionOutcome]int64
	styles      map[StyleKind]int64
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded counters.
type ExpvarMetricsSnapshot struct {
	Resolutions map[ResolutionOutcome]int64 `json:"resolutions_total"`
	Styles      map[StyleKind]int64         `json:"styles_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and publishes
// it under name. When name is empty a unique identifier is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("nuclidex_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:        name,
		resolutions: make(map[ResolutionOutcome]int64),
		styles:      make(map[StyleKind]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot returns a copy of the counters.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make(map[ResolutionOutcome]int64, len(r.resolutions))
	for k, v := range r.resolutions {
		res[k] = v
	}
	styles := make(map[StyleKind]int64, len(r.styles))
	for k, v := range r.styles {
		styles[k] = v
	}
	return ExpvarMetricsSnapshot{Resolutions: res, Styles: styles, RecordedAt: time.Now().UTC()}
}

// ObserveResolution implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) ObserveResolution(outcome ResolutionOutcome) {
	r.mu.Lock()
	r.resolutions[outcome]++
	r.mu.Unlock()
}

// ObserveStyle implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) ObserveStyle(kind StyleKind) {
	r.mu.Lock()
	r.styles[kind]++
	r.mu.Unlock()
}

// PrometheusMetricsRecorder exports counters as Prometheus counter vectors.
type PrometheusMetricsRecorder struct {
	resolutions *prometheus.CounterVec
	styles      *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder registers the nuclidex counters on reg. If the
// collectors are already registered the existing ones are reused.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer, namespace string) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "nuclidex"
	}
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Isotope stability resolutions by outcome.",
	}, []string{"outcome"})
	styles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "styles_total",
		Help:      "Style descriptors produced by mapper kind.",
	}, []string{"kind"})

	var err error
	if resolutions, err = registerCounterVec(reg, resolutions); err != nil {
		return nil, err
	}
	if styles, err = registerCounterVec(reg, styles); err != nil {
		return nil, err
	}
	return &PrometheusMetricsRecorder{resolutions: resolutions, styles: styles}, nil
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return cv, nil
}

// ObserveResolution implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveResolution(outcome ResolutionOutcome) {
	r.resolutions.WithLabelValues(string(outcome)).Inc()
}

// ObserveStyle implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveStyle(kind StyleKind) {
	r.styles.WithLabelValues(string(kind)).Inc()
}
