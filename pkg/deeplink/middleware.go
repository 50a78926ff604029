package deeplink

import (
	"context"
	"errors"
)

// Outcome errors passed back through the middleware chain. Service methods
// never return them; they let middleware classify an operation.
var (
	// ErrUnresolved means a parse produced Unknown.
	ErrUnresolved = errors.New("link did not resolve to a route")

	// ErrUnregistered means a route could not be built into a URL.
	ErrUnregistered = errors.New("route type is not registered")
)

// OpKind names a Service operation.
type OpKind string

const (
	OpParseURL    OpKind = "parse_url"
	OpParseParams OpKind = "parse_params"
	OpBuild       OpKind = "build"
)

// Operation describes one Service call as it passes through middleware.
// The terminal step fills in the result fields before next returns.
type Operation struct {
	// Kind is the operation being performed.
	Kind OpKind

	// Input is the raw URL for OpParseURL and the route_id value for
	// OpParseParams. It is empty for OpBuild.
	Input string

	// Route is the resolved route for parse operations (Unknown on failure)
	// and the input route for OpBuild.
	Route Route

	// RouteID is the id of the matched or built entry, empty if none.
	RouteID string

	// URL is the built link for OpBuild.
	URL string
}

// Middleware observes or wraps Service operations.
type Middleware interface {
	// Handle runs around an operation. Implementations call next exactly once
	// and return its error.
	Handle(ctx context.Context, op *Operation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, op *Operation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, op *Operation, next func() error) error {
	return f(ctx, op, next)
}

// ComposeMiddleware runs handler behind mw, first middleware outermost.
func ComposeMiddleware(ctx context.Context, op *Operation, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, op, next)
		}
	}

	return chain()
}

// Chain combines middleware into one, in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, op *Operation, next func() error) error {
		return ComposeMiddleware(ctx, op, middleware, next)
	})
}

// Only runs mw for operations of the given kinds and skips it otherwise.
func Only(mw Middleware, kinds ...OpKind) Middleware {
	return MiddlewareFunc(func(ctx context.Context, op *Operation, next func() error) error {
		for _, k := range kinds {
			if op.Kind == k {
				return mw.Handle(ctx, op, next)
			}
		}
		return next()
	})
}
