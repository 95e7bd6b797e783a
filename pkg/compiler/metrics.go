package compiler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vbind/pkg/directive"
)

// MetricsConfig configures the Prometheus collectors of a compiler.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vbind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "compiler").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for compile duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vbind",
		Subsystem: "compiler",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors updated by compile passes.
// A nil *Metrics records nothing.
type Metrics struct {
	compilesTotal       *prometheus.CounterVec
	compileDuration     prometheus.Histogram
	directivesTotal     *prometheus.CounterVec
	interpolationsTotal prometheus.Counter
	compileErrors       *prometheus.CounterVec
}

// NewMetrics creates and registers the compiler collectors. Registering
// twice on the same registry panics, so create one Metrics per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compiles_total",
			Help:        "Total number of compile passes by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		compileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_duration_seconds",
			Help:        "Compile pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		directivesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "directives_total",
			Help:        "Total number of directive attributes processed by kind and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "outcome"}),

		interpolationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "interpolations_total",
			Help:        "Total number of text interpolations performed",
			ConstLabels: config.ConstLabels,
		}),

		compileErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_errors_total",
			Help:        "Total number of failed compile passes by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) observeCompile(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.compilesTotal.WithLabelValues(status).Inc()
	m.compileDuration.Observe(d.Seconds())
}

func (m *Metrics) observeDirective(kind string, outcome string) {
	if m == nil {
		return
	}
	m.directivesTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) observeInterpolation() {
	if m == nil {
		return
	}
	m.interpolationsTotal.Inc()
}

func (m *Metrics) observeError(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.compileErrors.WithLabelValues(code).Inc()
}

// directiveLabel is the kind label for a parsed or unknown directive.
func directiveLabel(d directive.Directive, status directive.Status) string {
	if status == directive.Unknown {
		return "unknown"
	}
	return d.Kind.String()
}
