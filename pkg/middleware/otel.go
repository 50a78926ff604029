package middleware

import (
	"context"

	"github.com/yral-dev/deeplink/pkg/deeplink"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for deep-link operations.
const defaultTracerName = "github.com/yral-dev/deeplink"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: the module path).
	TracerName string

	// TracerProvider supplies the tracer (default: the global provider).
	TracerProvider trace.TracerProvider

	// IncludeInput records the raw URL or route_id of parse operations and
	// the built URL of build operations in spans.
	// Links can carry tokens, so this is disabled by default.
	IncludeInput bool

	// Filter determines which operations to trace.
	// Return true to trace the operation, false to skip.
	// If nil, all operations are traced.
	Filter func(op *deeplink.Operation) bool

	// AttributeExtractor adds custom attributes once the operation finished.
	AttributeExtractor func(op *deeplink.Operation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeInput enables recording the operation input.
func WithIncludeInput(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeInput = include
	}
}

// WithOperationFilter sets a filter function for operations.
func WithOperationFilter(filter func(op *deeplink.Operation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(op *deeplink.Operation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that wraps every deep-link operation in a
// span named "deeplink.<op>".
//
// Spans carry the operation kind, the matched route id, the built URL for
// builds and the outcome. Unresolved parses and unregistered builds are normal
// results and leave the span status unset; errors from inner middleware are
// recorded and mark the span as failed.
//
// Without WithTracerProvider the tracer comes from the global provider, which
// is a no-op until the application calls otel.SetTracerProvider.
func OpenTelemetry(opts ...OTelOption) deeplink.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return deeplink.MiddlewareFunc(func(ctx context.Context, op *deeplink.Operation, next func() error) error {
		if config.Filter != nil && !config.Filter(op) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("deeplink.op", string(op.Kind)),
		}
		if config.IncludeInput && op.Input != "" {
			attrs = append(attrs, attribute.String("deeplink.input", op.Input))
		}

		_, span := tracer.Start(ctx, spanName(op),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()

		outcome := Outcome(err)
		span.SetAttributes(attribute.String("deeplink.outcome", outcome))
		if op.RouteID != "" {
			span.SetAttributes(attribute.String("deeplink.route_id", op.RouteID))
		}
		if config.IncludeInput && op.Kind == deeplink.OpBuild && op.URL != "" {
			span.SetAttributes(attribute.String("deeplink.url", op.URL))
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(op)...)
		}

		if outcome == OutcomeError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if outcome == OutcomeOK {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// spanName creates a span name for op.
func spanName(op *deeplink.Operation) string {
	return "deeplink." + string(op.Kind)
}
