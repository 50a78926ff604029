// Package middleware provides observability middleware for deeplink.Service.
//
// # Prometheus Metrics
//
// Prometheus counts operations by kind, route id and outcome, and observes
// their duration:
//
//	mw, _ := middleware.Prometheus(middleware.WithRegistry(reg))
//	svc := deeplink.NewService(table, deeplink.WithMiddleware(mw))
//
// Outcomes are "ok", "unresolved" (a parse produced Unknown), "unregistered"
// (a route could not be built) and "error" (inner middleware failed).
//
// # OpenTelemetry Middleware
//
// OpenTelemetry wraps each operation in a span:
//
//	deeplink.WithMiddleware(
//	    middleware.OpenTelemetry(
//	        middleware.WithOperationFilter(func(op *deeplink.Operation) bool {
//	            return op.Kind != deeplink.OpBuild
//	        }),
//	    ),
//	)
//
// Spans are children of the span in the context passed to the Service call.
package middleware
