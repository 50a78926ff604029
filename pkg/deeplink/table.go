package deeplink

import (
	"reflect"
	"strings"

	"github.com/yral-dev/deeplink/internal/errors"
	"github.com/yral-dev/deeplink/pkg/routepattern"
)

// Entry binds a route type to its pattern and serializer.
type Entry struct {
	// RouteType is the Go type of the route.
	RouteType reflect.Type

	// Pattern is the pattern string as registered.
	Pattern string

	// Spec is the compiled pattern.
	Spec routepattern.Spec

	// Serializer converts between routes and field maps.
	Serializer Serializer

	// Internal marks routes that Parser must never return.
	Internal bool
}

// RouteID returns the serializer's route id.
func (e Entry) RouteID() string {
	if e.Serializer == nil {
		return ""
	}
	return e.Serializer.RouteID()
}

// Table is an ordered, immutable routing table. Entry order is match
// priority: the first entry whose pattern and serializer accept an input wins.
// A Table is safe for concurrent use.
type Table struct {
	entries []Entry
	byID    map[string]int
	byType  map[reflect.Type]int
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in priority order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// list returns the entries without copying.
func (t *Table) list() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Lookup returns the entry with the given route id.
func (t *Table) Lookup(routeID string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.byID[routeID]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// LookupType returns the first entry registered for a route type.
func (t *Table) LookupType(rt reflect.Type) (Entry, bool) {
	if t == nil || rt == nil {
		return Entry{}, false
	}
	i, ok := t.byType[rt]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// EntryFor returns the entry for a route value's runtime type. A pointer to
// a registered struct type resolves to that type's entry.
func (t *Table) EntryFor(r Route) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	rt := reflect.TypeOf(r)
	if e, ok := t.LookupType(rt); ok {
		return e, true
	}
	if rt.Kind() == reflect.Pointer {
		return t.LookupType(rt.Elem())
	}
	return Entry{}, false
}

// EntryOption configures a registered entry.
type EntryOption func(*Entry)

// AsInternal marks the entry internal regardless of its route type.
func AsInternal() EntryOption {
	return func(e *Entry) {
		e.Internal = true
	}
}

// Builder assembles a Table. Registration order is match priority.
// Registration problems are collected and reported by Build.
type Builder struct {
	entries []Entry
	errs    []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Route registers a pattern with an explicit serializer.
func (b *Builder) Route(pattern string, s Serializer, opts ...EntryOption) *Builder {
	if s == nil {
		b.errs = append(b.errs, errors.New("E103").WithDetailf("pattern %q", pattern))
		return b
	}

	rt := s.RouteType()
	if rt == nil {
		b.errs = append(b.errs, errors.New("E104").WithDetailf("serializer %q has no route type", s.RouteID()))
		return b
	}

	e := Entry{
		RouteType:  rt,
		Pattern:    pattern,
		Spec:       routepattern.Parse(pattern),
		Serializer: s,
		Internal:   isInternalType(rt),
	}
	for _, opt := range opts {
		opt(&e)
	}

	if name, dup := duplicateParam(e.Spec); dup {
		b.errs = append(b.errs, errors.New("E105").WithDetailf("{%s} in pattern %q", name, pattern))
		return b
	}

	b.entries = append(b.entries, e)
	return b
}

// Register registers route type T with a serializer derived from its
// `route` struct tags.
func Register[T Route](b *Builder, pattern string, opts ...EntryOption) *Builder {
	s, err := NewStructSerializer[T]()
	if err != nil {
		b.errs = append(b.errs, errors.New("E104").WithDetail(err.Error()))
		return b
	}
	return b.Route(pattern, s, opts...)
}

// Build validates the registrations and returns the table.
func (b *Builder) Build() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	t := &Table{
		entries: make([]Entry, len(b.entries)),
		byID:    make(map[string]int, len(b.entries)),
		byType:  make(map[reflect.Type]int, len(b.entries)),
	}
	copy(t.entries, b.entries)

	for i, e := range t.entries {
		id := e.RouteID()
		if strings.TrimSpace(id) == "" {
			return nil, errors.New("E102").WithDetailf("route type %v", e.RouteType)
		}
		if prev, dup := t.byID[id]; dup {
			return nil, errors.New("E101").
				WithDetailf("route id %q registered by %v and %v", id, t.entries[prev].RouteType, e.RouteType)
		}
		t.byID[id] = i
		if _, seen := t.byType[e.RouteType]; !seen {
			t.byType[e.RouteType] = i
		}
	}
	return t, nil
}

// MustBuild is like Build but panics on error. It is meant for tables
// declared at package initialization.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// BuildTable runs fn against a fresh builder and builds the table.
//
//	table, err := deeplink.BuildTable(func(b *deeplink.Builder) {
//	    deeplink.Register[Home](b, "/")
//	    deeplink.Register[PostDetails](b, "/post/details/{postId}?canisterId")
//	})
func BuildTable(fn func(b *Builder)) (*Table, error) {
	b := NewBuilder()
	if fn != nil {
		fn(b)
	}
	return b.Build()
}

// duplicateParam reports the first path parameter declared twice.
func duplicateParam(spec routepattern.Spec) (string, bool) {
	seen := make(map[string]bool)
	for _, name := range spec.ParamNames() {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}
