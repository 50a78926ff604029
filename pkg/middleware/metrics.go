package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yral-dev/deeplink/pkg/deeplink"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeUnresolved   = "unresolved"
	OutcomeUnregistered = "unregistered"
	OutcomeError        = "error"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "deeplink").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for operation duration.
	// Default: tuned for sub-millisecond work, 10µs to ~40ms.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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
		Namespace: "deeplink",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 13),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors registered by Prometheus.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	middlewareErrors  *prometheus.CounterVec
	linkBytes         prometheus.Histogram
}

// newMetrics registers the collectors with config.Registry.
func newMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operations_total",
			Help:        "Total number of deep-link operations by kind, route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "route", "outcome"}),

		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operation_duration_seconds",
			Help:        "Deep-link operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		middlewareErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "middleware_errors_total",
			Help:        "Errors returned by inner middleware",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		linkBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "built_link_bytes",
			Help:        "Length of built links in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{32, 64, 128, 256, 512, 1024, 2048},
		}),
	}
}

// Prometheus creates middleware that collects metrics for deep-link
// operations, along with the registered collectors.
//
// Metrics collected:
//   - deeplink_operations_total: Counter by op, route id and outcome
//   - deeplink_operation_duration_seconds: Histogram of operation duration by op
//   - deeplink_middleware_errors_total: Counter of errors from inner middleware
//   - deeplink_built_link_bytes: Histogram of built link length
//
// Unmatched parses are labelled with route "unknown". Each call registers a
// fresh set of collectors, so use one Prometheus middleware per registry.
//
// Example:
//
//	mw, _ := middleware.Prometheus(middleware.WithNamespace("app_links"))
//	svc := deeplink.NewService(table, deeplink.WithMiddleware(mw))
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) (deeplink.Middleware, *Metrics) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)

	return deeplink.MiddlewareFunc(func(ctx context.Context, op *deeplink.Operation, next func() error) error {
		start := time.Now()
		err := next()
		m.operationDuration.WithLabelValues(string(op.Kind)).Observe(time.Since(start).Seconds())

		outcome := Outcome(err)
		if outcome == OutcomeError {
			m.middlewareErrors.WithLabelValues(string(op.Kind)).Inc()
		}
		m.operationsTotal.WithLabelValues(string(op.Kind), routeLabel(op), outcome).Inc()

		if op.Kind == deeplink.OpBuild && outcome == OutcomeOK {
			m.linkBytes.Observe(float64(len(op.URL)))
		}
		return err
	}), m
}

// Outcome classifies the error an operation returned through the chain.
// It keeps label cardinality bounded.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, deeplink.ErrUnresolved):
		return OutcomeUnresolved
	case errors.Is(err, deeplink.ErrUnregistered):
		return OutcomeUnregistered
	default:
		return OutcomeError
	}
}

// routeLabel returns the route id label for op.
func routeLabel(op *deeplink.Operation) string {
	if op.RouteID == "" {
		return "unknown"
	}
	return op.RouteID
}
