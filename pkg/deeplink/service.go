package deeplink

import (
	"context"
	"log/slog"
	"strings"
)

// Service bundles a Parser and a URLBuilder over one table, with logging and
// middleware. It is the entry point applications hold for the process
// lifetime; it is safe for concurrent use.
type Service struct {
	table      *Table
	parser     *Parser
	builder    *URLBuilder
	logger     *slog.Logger
	middleware []Middleware
}

// serviceConfig collects Option values.
type serviceConfig struct {
	scheme     string
	host       string
	hostless   []string
	logger     *slog.Logger
	middleware []Middleware
}

// Option configures a Service.
type Option func(*serviceConfig)

// WithScheme sets the scheme of built links (default "https").
func WithScheme(scheme string) Option {
	return func(c *serviceConfig) {
		c.scheme = scheme
	}
}

// WithHost sets the host of built links. An empty host produces hostless
// links and makes the parser accept them.
func WithHost(host string) Option {
	return func(c *serviceConfig) {
		c.host = host
	}
}

// WithParserHostlessSchemes adds schemes whose authority the parser treats
// as the first path segment, in addition to the builder's own scheme when
// the host is empty.
func WithParserHostlessSchemes(schemes ...string) Option {
	return func(c *serviceConfig) {
		c.hostless = append(c.hostless, schemes...)
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithMiddleware appends middleware run around every operation.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *serviceConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// NewService creates a service over table.
func NewService(table *Table, opts ...Option) *Service {
	cfg := serviceConfig{scheme: "https"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	hostless := cfg.hostless
	if cfg.host == "" && cfg.scheme != "" && !isWebScheme(cfg.scheme) {
		hostless = append(hostless, cfg.scheme)
	}

	return &Service{
		table:      table,
		parser:     NewParser(table, WithHostlessSchemes(hostless...)),
		builder:    NewURLBuilder(table, cfg.scheme, cfg.host),
		logger:     cfg.logger.With("component", "deeplink"),
		middleware: cfg.middleware,
	}
}

// Table returns the routing table.
func (s *Service) Table() *Table { return s.table }

// Parser returns the underlying parser.
func (s *Service) Parser() *Parser { return s.parser }

// URLBuilder returns the underlying builder.
func (s *Service) URLBuilder() *URLBuilder { return s.builder }

// ParseURL resolves a URL. See Parser.Parse.
func (s *Service) ParseURL(ctx context.Context, rawURL string) Route {
	op := &Operation{Kind: OpParseURL, Input: rawURL, Route: Unknown}
	s.run(ctx, op, func() error {
		op.Route = s.parser.Parse(rawURL)
		return s.resolved(op)
	})
	return routeOrUnknown(op.Route)
}

// ParseParams resolves a parameter map. See Parser.ParseParams.
func (s *Service) ParseParams(ctx context.Context, params map[string]string) Route {
	op := &Operation{Kind: OpParseParams, Input: params[RouteIDKey], Route: Unknown}
	s.run(ctx, op, func() error {
		op.Route = s.parser.ParseParams(params)
		return s.resolved(op)
	})
	return routeOrUnknown(op.Route)
}

// BuildURL renders route as a URL. See URLBuilder.Build.
func (s *Service) BuildURL(ctx context.Context, route Route) (string, bool) {
	op := &Operation{Kind: OpBuild, Route: route}
	var ok bool
	s.run(ctx, op, func() error {
		if e, found := s.table.EntryFor(route); found {
			op.RouteID = e.RouteID()
		}
		op.URL, ok = s.builder.Build(route)
		if !ok {
			return ErrUnregistered
		}
		return nil
	})
	return op.URL, ok
}

// routeOrUnknown maps a missing result, left by a middleware that never
// called next, to Unknown.
func routeOrUnknown(r Route) Route {
	if r == nil {
		return Unknown
	}
	return r
}

// resolved records the matched route id and classifies the parse result.
func (s *Service) resolved(op *Operation) error {
	if IsUnknown(op.Route) {
		op.Route = Unknown
		return ErrUnresolved
	}
	if e, ok := s.table.EntryFor(op.Route); ok {
		op.RouteID = e.RouteID()
	}
	return nil
}

// run executes handler behind the middleware chain and logs the outcome.
func (s *Service) run(ctx context.Context, op *Operation, handler func() error) {
	if ctx == nil {
		ctx = context.Background()
	}

	err := ComposeMiddleware(ctx, op, s.middleware, handler)
	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "deeplink operation", "op", op.Kind, "route_id", op.RouteID)
	case err == ErrUnresolved || err == ErrUnregistered:
		s.logger.DebugContext(ctx, "deeplink operation failed", "op", op.Kind, "input", op.Input, "error", err)
	default:
		s.logger.WarnContext(ctx, "deeplink middleware error", "op", op.Kind, "error", err)
	}
}

// isWebScheme reports whether links under scheme always carry a host.
func isWebScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
