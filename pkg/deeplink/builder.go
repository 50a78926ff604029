package deeplink

import (
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/yral-dev/deeplink/pkg/routepattern"
)

// URLBuilder renders routes as URLs under a fixed scheme and host.
//
// It does not check the Internal marker: links to internal routes can be
// built for tooling and tests even though Parser refuses them. A URLBuilder
// holds no mutable state and is safe for concurrent use.
type URLBuilder struct {
	table  *Table
	scheme string
	host   string
}

// NewURLBuilder creates a builder. With an empty host and a non-empty scheme
// the first path segment is written in the authority position, producing
// hostless custom-scheme links such as "yralm://post/details/1".
func NewURLBuilder(table *Table, scheme, host string) *URLBuilder {
	return &URLBuilder{
		table:  table,
		scheme: scheme,
		host:   host,
	}
}

// Scheme returns the configured scheme.
func (b *URLBuilder) Scheme() string { return b.scheme }

// Host returns the configured host.
func (b *URLBuilder) Host() string { return b.host }

// Build renders route as a URL. It returns false when the route's type is not
// registered or its serializer cannot encode it.
//
// Path parameters are escaped with EscapeSegment and empty segments are
// dropped. With a query template each declared key carries its mapped field;
// without one every field not used in the path becomes a query parameter, in
// key order. Blank values and the literal "null" are omitted either way.
func (b *URLBuilder) Build(route Route) (string, bool) {
	e, ok := b.table.EntryFor(route)
	if !ok {
		return "", false
	}

	fields, ok := encode(e.Serializer, derefRoute(e, route))
	if !ok {
		return "", false
	}

	segments, templated := e.Spec.BuildComponents(fields)
	path := make([]string, 0, len(segments))
	hostless := b.scheme != "" && b.host == ""
	for i, seg := range segments {
		if e.Spec.Tokens[i].Kind == routepattern.Param {
			if hostless && len(path) == 0 {
				seg = escapeAuthority(seg)
			} else {
				seg = EscapeSegment(seg)
			}
		}
		if seg != "" {
			path = append(path, seg)
		}
	}

	var query []string
	if tmpl := e.Spec.Query; tmpl != nil {
		for _, key := range tmpl.Keys() {
			if v, ok := templated[key]; ok && keepQueryValue(v) {
				query = append(query, url.QueryEscape(key)+"="+url.QueryEscape(v))
			}
		}
	} else {
		inPath := make(map[string]bool)
		for _, name := range e.Spec.ParamNames() {
			inPath[name] = true
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			if !inPath[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v := fields[k]; keepQueryValue(v) {
				query = append(query, url.QueryEscape(k)+"="+url.QueryEscape(v))
			}
		}
	}

	var sb strings.Builder
	switch {
	case hostless:
		sb.WriteString(b.scheme)
		sb.WriteString("://")
		sb.WriteString(strings.Join(path, "/"))
	case b.scheme != "":
		sb.WriteString(b.scheme)
		sb.WriteString("://")
		sb.WriteString(b.host)
		sb.WriteString("/")
		sb.WriteString(strings.Join(path, "/"))
	case b.host != "":
		sb.WriteString("//")
		sb.WriteString(b.host)
		sb.WriteString("/")
		sb.WriteString(strings.Join(path, "/"))
	default:
		sb.WriteString("/")
		sb.WriteString(strings.Join(path, "/"))
	}
	if len(query) > 0 {
		sb.WriteString("?")
		sb.WriteString(strings.Join(query, "&"))
	}
	return sb.String(), true
}

// keepQueryValue filters blank values and stringified absent values.
func keepQueryValue(v string) bool {
	return strings.TrimSpace(v) != "" && v != "null"
}

// derefRoute turns a pointer to a route struct into the struct value when the
// entry was registered for the struct type.
func derefRoute(e Entry, r Route) Route {
	if reflect.TypeOf(r) == e.RouteType {
		return r
	}
	v := reflect.ValueOf(r)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		if inner, ok := v.Elem().Interface().(Route); ok {
			return inner
		}
	}
	return r
}

// encode runs a serializer, treating errors and panics as a failed encode.
func encode(s Serializer, r Route) (fields map[string]string, ok bool) {
	defer func() {
		if recover() != nil {
			fields, ok = nil, false
		}
	}()

	fields, err := s.Encode(r)
	if err != nil {
		return nil, false
	}
	if fields == nil {
		fields = map[string]string{}
	}
	return fields, true
}
