package deeplink

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// recorder captures the operations it sees and the outcome of next.
type recorder struct {
	name  string
	trace *[]string
	ops   []Operation
	errs  []error
}

func (r *recorder) Handle(ctx context.Context, op *Operation, next func() error) error {
	*r.trace = append(*r.trace, r.name+">")
	err := next()
	*r.trace = append(*r.trace, "<"+r.name)
	r.ops = append(r.ops, *op)
	r.errs = append(r.errs, err)
	return err
}

func TestServiceRoundTrip(t *testing.T) {
	svc := NewService(testTable(), WithScheme("yralm"), WithHost(""))
	ctx := context.Background()

	route := postDetailsRoute{PostID: "789", CanisterID: "cid-123"}
	link, ok := svc.BuildURL(ctx, route)
	if !ok || link != "yralm://post/details/789?canisterId=cid-123" {
		t.Fatalf("BuildURL() = %q, %v", link, ok)
	}
	if got := svc.ParseURL(ctx, link); got != route {
		t.Errorf("ParseURL(%q) = %#v, want %#v", link, got, route)
	}

	home, _ := svc.BuildURL(ctx, homeRoute{})
	if home != "yralm://" {
		t.Errorf("BuildURL(home) = %q", home)
	}
	if got := svc.ParseURL(ctx, home); got != (homeRoute{}) {
		t.Errorf("ParseURL(%q) = %#v, want homeRoute", home, got)
	}

	// Web links keep resolving alongside hostless ones.
	if got := svc.ParseURL(ctx, "https://yral.com/user/1"); got != (userRoute{UserID: "1"}) {
		t.Errorf("ParseURL(web) = %#v", got)
	}
}

func TestServiceWebScheme(t *testing.T) {
	svc := NewService(testTable(), WithHost("example.com"))
	ctx := context.Background()

	link, ok := svc.BuildURL(ctx, userRoute{UserID: "user456"})
	if !ok || link != "https://example.com/user/user456" {
		t.Fatalf("BuildURL() = %q, %v", link, ok)
	}
	if got := svc.ParseURL(ctx, link); got != (userRoute{UserID: "user456"}) {
		t.Errorf("ParseURL() = %#v", got)
	}
	if svc.Table() == nil || svc.Parser() == nil || svc.URLBuilder().Host() != "example.com" {
		t.Error("accessors returned unexpected values")
	}
}

func TestServiceInternalRoute(t *testing.T) {
	svc := NewService(testTable(), WithHost("example.com"))
	ctx := context.Background()

	link, ok := svc.BuildURL(ctx, internalRoute{InternalID: "secret"})
	if !ok || link != "https://example.com/internal/secret" {
		t.Fatalf("BuildURL() = %q, %v", link, ok)
	}
	if got := svc.ParseURL(ctx, link); !IsUnknown(got) {
		t.Errorf("ParseURL(%q) = %#v, want Unknown", link, got)
	}
}

func TestServiceMiddleware(t *testing.T) {
	var trace []string
	outer := &recorder{name: "outer", trace: &trace}
	inner := &recorder{name: "inner", trace: &trace}

	svc := NewService(testTable(), WithHost("example.com"), WithMiddleware(outer, inner))
	ctx := context.Background()

	svc.ParseURL(ctx, "https://example.com/user/1")
	svc.ParseParams(ctx, map[string]string{RouteIDKey: "nope"})
	svc.BuildURL(ctx, unregisteredRoute{})
	svc.BuildURL(ctx, productRoute{ProductID: "2"})

	want := "outer> inner> <inner <outer"
	if got := strings.Join(trace[:4], " "); got != want {
		t.Errorf("trace = %q, want %q", got, want)
	}

	if len(inner.ops) != 4 {
		t.Fatalf("inner saw %d operations, want 4", len(inner.ops))
	}

	parse := inner.ops[0]
	if parse.Kind != OpParseURL || parse.RouteID != "userRoute" || parse.Route != (userRoute{UserID: "1"}) || inner.errs[0] != nil {
		t.Errorf("parse op = %+v, err = %v", parse, inner.errs[0])
	}

	params := inner.ops[1]
	if params.Kind != OpParseParams || params.Input != "nope" || !IsUnknown(params.Route) || !errors.Is(inner.errs[1], ErrUnresolved) {
		t.Errorf("params op = %+v, err = %v", params, inner.errs[1])
	}

	if inner.ops[2].Kind != OpBuild || !errors.Is(inner.errs[2], ErrUnregistered) {
		t.Errorf("failed build op = %+v, err = %v", inner.ops[2], inner.errs[2])
	}

	build := inner.ops[3]
	if build.RouteID != "productRoute" || build.URL != "https://example.com/product/2" || inner.errs[3] != nil {
		t.Errorf("build op = %+v, err = %v", build, inner.errs[3])
	}
}

func TestServiceMiddlewareErrorDoesNotLeak(t *testing.T) {
	failing := MiddlewareFunc(func(ctx context.Context, op *Operation, next func() error) error {
		_ = next()
		return errBoom
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewService(testTable(), WithHost("example.com"), WithMiddleware(failing), WithLogger(logger))

	if got := svc.ParseURL(context.Background(), "https://example.com/user/1"); got != (userRoute{UserID: "1"}) {
		t.Errorf("ParseURL() = %#v", got)
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "component=deeplink") {
		t.Errorf("log output = %q", out)
	}
}

func TestServiceResolution(t *testing.T) {
	rateLimited := MiddlewareFunc(func(ctx context.Context, op *Operation, next func() error) error {
		return errors.New("rate limited")
	})

	tests := []struct {
		name  string
		table *Table
		opts  []Option
		parse func(*Service) Route
		want  Route
	}{
		{
			name:  "middleware skips next on parse url",
			table: testTable(),
			opts:  []Option{WithHost("example.com"), WithMiddleware(rateLimited)},
			parse: func(s *Service) Route { return s.ParseURL(context.Background(), "https://example.com/user/1") },
			want:  Unknown,
		},
		{
			name:  "middleware skips next on parse params",
			table: testTable(),
			opts:  []Option{WithMiddleware(rateLimited)},
			parse: func(s *Service) Route {
				return s.ParseParams(context.Background(), map[string]string{RouteIDKey: "userRoute", "userId": "1"})
			},
			want: Unknown,
		},
		{
			name:  "malformed undeclared query key",
			table: testTable(),
			opts:  []Option{WithHost("example.com")},
			parse: func(s *Service) Route {
				return s.ParseURL(context.Background(), "https://example.com/post/details/1?canisterId=c&fbclid=a%zz")
			},
			want: postDetailsRoute{PostID: "1", CanisterID: "c"},
		},
		{
			name:  "hostless root parameter",
			table: slugTable(),
			opts:  []Option{WithScheme("yralm"), WithHost("")},
			parse: func(s *Service) Route {
				link, _ := s.BuildURL(context.Background(), slugRoute{Slug: "evil.com@x"})
				return s.ParseURL(context.Background(), link)
			},
			want: slugRoute{Slug: "evil.com@x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.table, tt.opts...)
			got := tt.parse(svc)
			if got == nil || got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestServiceLogsUnresolved(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewService(testTable(), WithLogger(logger))

	if got := svc.ParseURL(context.Background(), "https://example.com/nowhere"); !IsUnknown(got) {
		t.Errorf("ParseURL() = %#v, want Unknown", got)
	}
	out := buf.String()
	if !strings.Contains(out, "deeplink operation failed") || !strings.Contains(out, "op=parse_url") {
		t.Errorf("log output = %q", out)
	}
}

func TestOnly(t *testing.T) {
	var kinds []OpKind
	mw := Only(MiddlewareFunc(func(ctx context.Context, op *Operation, next func() error) error {
		kinds = append(kinds, op.Kind)
		return next()
	}), OpBuild)

	svc := NewService(testTable(), WithHost("h"), WithMiddleware(mw))
	ctx := context.Background()
	svc.ParseURL(ctx, "https://h/")
	svc.BuildURL(ctx, homeRoute{})

	if len(kinds) != 1 || kinds[0] != OpBuild {
		t.Errorf("middleware ran for %v, want [build]", kinds)
	}
}

func TestChain(t *testing.T) {
	var trace []string
	a := &recorder{name: "a", trace: &trace}
	b := &recorder{name: "b", trace: &trace}

	err := Chain(a, b).Handle(context.Background(), &Operation{Kind: OpBuild}, func() error {
		trace = append(trace, "handler")
		return nil
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got, want := strings.Join(trace, " "), "a> b> handler <b <a"; got != want {
		t.Errorf("trace = %q, want %q", got, want)
	}
}
